package chats

import (
	"encoding/json"
	"errors"

	"github.com/chatlog-io/chatlog-backend/apps/ai"
	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var validate = validator.New()

var (
	ErrNoMessages    = errors.New("no messages in conversation")
	ErrAIUnavailable = errors.New("ai client is not configured")
)

// aiClient resolves the chat-completions client the handlers use. A variable
// so tests can point the handlers at a stub server.
var aiClient = func() *ai.Client {
	return ai.GetClient()
}

// metadataJSON converts a decoded metadata object into its stored JSON form.
// Nil stays nil so the column remains NULL for metadata-less records.
func metadataJSON(metadata map[string]any) (datatypes.JSON, error) {
	if metadata == nil {
		return nil, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// loadTranscript fetches a conversation's full message history and renders it
// as a transcript. Fails with ErrConversationNotFound or ErrNoMessages.
func loadTranscript(store *models.Store, conversationID uuid.UUID) (string, error) {
	conversation, err := store.GetConversationByID(conversationID)
	if err != nil {
		return "", err
	}
	if conversation == nil {
		return "", models.ErrConversationNotFound
	}

	messages, err := store.GetConversationMessages(conversationID, 0, 0)
	if err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	return ai.Transcript(messages), nil
}

// SummarizeConversation generates an AI summary over the conversation's full
// history and persists it. At most one summary may exist per conversation.
// The summary metadata carries the transcript's detected language when the
// detector is confident.
func SummarizeConversation(store *models.Store, client *ai.Client, conversationID uuid.UUID) (*models.Summary, error) {
	if client == nil {
		return nil, ErrAIUnavailable
	}

	transcript, err := loadTranscript(store, conversationID)
	if err != nil {
		return nil, err
	}

	summaryText, err := client.Summarize(transcript)
	if err != nil {
		return nil, err
	}

	var metadata datatypes.JSON
	if code := ai.DetectLanguage(transcript); code != "" {
		metadata, _ = metadataJSON(map[string]any{"language": code})
	}

	model := client.Model()
	summary, err := store.CreateSummary(conversationID, summaryText, &model, metadata)
	if err != nil {
		return nil, err
	}

	log.Info("Summary created for conversation %s", conversationID)
	return summary, nil
}

// InsightResult is one generated insight as reported back to the caller.
type InsightResult struct {
	Type     string   `json:"type"`
	Result   string   `json:"result,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// GenerateConversationInsights runs sentiment analysis and keyword extraction
// concurrently over the conversation's history. Each analysis persists its
// own insight record; a failed analysis is logged and skipped without
// affecting the other, so the result may hold zero, one or two entries.
func GenerateConversationInsights(store *models.Store, client *ai.Client, conversationID uuid.UUID) ([]InsightResult, error) {
	if client == nil {
		return nil, ErrAIUnavailable
	}

	transcript, err := loadTranscript(store, conversationID)
	if err != nil {
		return nil, err
	}

	results := make(chan *InsightResult, 2)

	go func() {
		results <- analyzeSentiment(store, client, conversationID, transcript)
	}()
	go func() {
		results <- extractKeywords(store, client, conversationID, transcript)
	}()

	insights := make([]InsightResult, 0, 2)
	for i := 0; i < 2; i++ {
		if result := <-results; result != nil {
			insights = append(insights, *result)
		}
	}

	return insights, nil
}

func analyzeSentiment(store *models.Store, client *ai.Client, conversationID uuid.UUID, transcript string) *InsightResult {
	sentiment, err := client.AnalyzeSentiment(transcript)
	if err != nil {
		log.Error("Sentiment analysis failed for conversation %s: %v", conversationID, err)
		return nil
	}

	data, err := metadataJSON(map[string]any{"result": sentiment})
	if err != nil {
		log.Error("Failed to encode sentiment insight for conversation %s: %v", conversationID, err)
		return nil
	}

	model := client.Model()
	if _, err := store.CreateInsight(conversationID, models.InsightTypeSentiment, data, &model, nil); err != nil {
		log.Error("Failed to store sentiment insight for conversation %s: %v", conversationID, err)
		return nil
	}

	return &InsightResult{Type: models.InsightTypeSentiment, Result: sentiment}
}

func extractKeywords(store *models.Store, client *ai.Client, conversationID uuid.UUID, transcript string) *InsightResult {
	keywords, err := client.ExtractKeywords(transcript)
	if err != nil {
		log.Error("Keyword extraction failed for conversation %s: %v", conversationID, err)
		return nil
	}

	data, err := metadataJSON(map[string]any{"keywords": keywords})
	if err != nil {
		log.Error("Failed to encode keywords insight for conversation %s: %v", conversationID, err)
		return nil
	}

	model := client.Model()
	if _, err := store.CreateInsight(conversationID, models.InsightTypeKeywords, data, &model, nil); err != nil {
		log.Error("Failed to store keywords insight for conversation %s: %v", conversationID, err)
		return nil
	}

	return &InsightResult{Type: models.InsightTypeKeywords, Keywords: keywords}
}
