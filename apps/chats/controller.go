package chats

import (
	"errors"
	"fmt"

	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/chatlog-io/chatlog-backend/lib/response"
	"github.com/getevo/evo/v2"
	"github.com/google/uuid"
)

type Controller struct{}

// CreateConversationRequest represents the request structure for creating a conversation
type CreateConversationRequest struct {
	Title    *string        `json:"title" validate:"omitempty,max=255"`
	Metadata map[string]any `json:"metadata"`
}

// ChatCreateRequest represents the request structure for logging a chat message
type ChatCreateRequest struct {
	ConversationID string         `json:"conversation_id" validate:"required"`
	UserID         string         `json:"user_id" validate:"required,min=1,max=255"`
	SenderType     string         `json:"sender_type" validate:"required,max=50"`
	Content        string         `json:"content" validate:"required,min=1"`
	Metadata       map[string]any `json:"metadata"`
}

// SummarizeRequest represents the request structure for summarizing a conversation
type SummarizeRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
}

// InsightsResponse represents the response structure for insight generation
type InsightsResponse struct {
	ConversationID uuid.UUID       `json:"conversation_id"`
	Insights       []InsightResult `json:"insights"`
}

// CreateConversation creates a new, empty conversation
func (c Controller) CreateConversation(req *evo.Request) interface{} {
	var input CreateConversationRequest
	if err := req.BodyParser(&input); err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeInvalidInput, "Invalid request format", 422, err.Error()))
	}
	if err := validate.Struct(input); err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeValidationError, "Validation failed", 422, err.Error()))
	}

	metadata, err := metadataJSON(input.Metadata)
	if err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeInvalidInput, "Invalid metadata", 422, err.Error()))
	}

	conversation, err := models.Default.CreateConversation(input.Title, metadata)
	if err != nil {
		return response.HandleDBError(err, "", "create conversation")
	}

	return response.Created(conversation)
}

// AddChat logs a message into an existing conversation
func (c Controller) AddChat(req *evo.Request) interface{} {
	var input ChatCreateRequest
	if err := req.BodyParser(&input); err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeInvalidInput, "Invalid request format", 422, err.Error()))
	}
	if err := validate.Struct(input); err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeValidationError, "Validation failed", 422, err.Error()))
	}

	conversationID, err := uuid.Parse(input.ConversationID)
	if err != nil {
		return response.Error(response.ErrInvalidConversationID)
	}

	metadata, err := metadataJSON(input.Metadata)
	if err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeInvalidInput, "Invalid metadata", 422, err.Error()))
	}

	message, err := models.Default.CreateMessage(conversationID, input.UserID, input.SenderType, input.Content, metadata)
	if err != nil {
		if errors.Is(err, models.ErrConversationNotFound) {
			return response.Error(response.ErrConversationNotFound)
		}
		return response.HandleDBError(err, "", "create message")
	}

	return response.Created(message)
}

// GetConversation returns a conversation with its messages, summary and insights
func (c Controller) GetConversation(req *evo.Request) interface{} {
	conversationID, err := uuid.Parse(req.Param("conversation_id").String())
	if err != nil {
		return response.Error(response.ErrInvalidConversationID)
	}

	conversation, err := models.Default.GetConversationByID(conversationID)
	if err != nil {
		return response.HandleDBError(err, "", "get conversation")
	}
	if conversation == nil {
		return response.Error(response.ErrConversationNotFound)
	}

	return response.OK(conversation)
}

// SummarizeChat generates and stores an AI summary for a conversation
func (c Controller) SummarizeChat(req *evo.Request) interface{} {
	var input SummarizeRequest
	if err := req.BodyParser(&input); err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeInvalidInput, "Invalid request format", 422, err.Error()))
	}
	if err := validate.Struct(input); err != nil {
		return response.Error(response.NewErrorWithDetails(response.ErrorCodeValidationError, "Validation failed", 422, err.Error()))
	}

	conversationID, err := uuid.Parse(input.ConversationID)
	if err != nil {
		return response.Error(response.ErrInvalidConversationID)
	}

	summary, err := SummarizeConversation(models.Default, aiClient(), conversationID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConversationNotFound):
			return response.Error(response.ErrConversationNotFound)
		case errors.Is(err, ErrNoMessages):
			return response.Error(response.ErrNoMessages)
		case errors.Is(err, models.ErrSummaryExists):
			return response.Error(response.ErrSummaryExists)
		case errors.Is(err, ErrAIUnavailable):
			return response.Error(response.NewError(response.ErrorCodeAIError, "AI features are not configured", 500))
		default:
			return response.Error(response.NewErrorWithDetails(response.ErrorCodeAIError, "Failed to summarize conversation", 500, err.Error()))
		}
	}

	return response.Created(summary)
}

// DeleteConversation removes a conversation together with its messages,
// summary and insights
func (c Controller) DeleteConversation(req *evo.Request) interface{} {
	conversationID, err := uuid.Parse(req.Param("conversation_id").String())
	if err != nil {
		return response.Error(response.ErrInvalidConversationID)
	}

	found, err := models.Default.DeleteConversation(conversationID)
	if err != nil {
		return response.HandleDBError(err, "", "delete conversation")
	}
	if !found {
		return response.Error(response.ErrConversationNotFound)
	}

	return response.Message(fmt.Sprintf("Conversation %s deleted successfully", conversationID))
}

// GenerateInsights runs sentiment analysis and keyword extraction over a
// conversation and stores the results. Sub-analyses fail independently.
func (c Controller) GenerateInsights(req *evo.Request) interface{} {
	conversationID, err := uuid.Parse(req.Param("conversation_id").String())
	if err != nil {
		return response.Error(response.ErrInvalidConversationID)
	}

	insights, err := GenerateConversationInsights(models.Default, aiClient(), conversationID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConversationNotFound):
			return response.Error(response.ErrConversationNotFound)
		case errors.Is(err, ErrNoMessages):
			return response.Error(response.ErrNoMessages)
		case errors.Is(err, ErrAIUnavailable):
			return response.Error(response.NewError(response.ErrorCodeAIError, "AI features are not configured", 500))
		default:
			return response.HandleDBError(err, "", "generate insights")
		}
	}

	return response.OK(InsightsResponse{
		ConversationID: conversationID,
		Insights:       insights,
	})
}
