package users

import (
	"strconv"

	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/chatlog-io/chatlog-backend/lib/response"
	"github.com/getevo/evo/v2"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Controller struct{}

// UserChatsResponse represents the paginated chat history of a user
type UserChatsResponse struct {
	UserID string                `json:"user_id"`
	Page   int                   `json:"page"`
	Limit  int                   `json:"limit"`
	Chats  []models.Conversation `json:"chats"`
}

// GetUserChats returns the conversations a user has participated in,
// newest first, page-numbered from 1
func (c Controller) GetUserChats(req *evo.Request) interface{} {
	userID := req.Param("user_id").String()

	page, ok := queryInt(req, "page", 1)
	if !ok || page < 1 {
		return response.Error(response.ErrInvalidPagination)
	}

	limit, ok := queryInt(req, "limit", defaultPageLimit)
	if !ok || limit < 1 || limit > maxPageLimit {
		return response.Error(response.ErrInvalidPagination)
	}

	skip := (page - 1) * limit
	chats, err := models.Default.GetConversationsByUser(userID, skip, limit)
	if err != nil {
		return response.HandleDBError(err, "", "get user chats")
	}

	return response.OK(UserChatsResponse{
		UserID: userID,
		Page:   page,
		Limit:  limit,
		Chats:  chats,
	})
}

// queryInt reads an integer query parameter, falling back to a default when
// the parameter is absent. Returns false when the value is not an integer.
func queryInt(req *evo.Request, name string, fallback int) (int, bool) {
	raw := req.Query(name).String()
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
