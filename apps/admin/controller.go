package admin

import (
	"github.com/chatlog-io/chatlog-backend/apps/models"
	"github.com/chatlog-io/chatlog-backend/lib/response"
	"github.com/getevo/evo/v2"
	"github.com/getevo/pagination"
)

type Controller struct{}

// ListConversations returns a paginated listing of all conversations with
// optional title search, for operational inspection
func (c Controller) ListConversations(request *evo.Request) any {
	var conversations []models.Conversation
	query := models.Default.DB().
		Preload("Summary").
		Model(&models.Conversation{})

	if search := request.Query("search").String(); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	switch request.Query("order_by").String() {
	case "updated_at":
		query = query.Order("updated_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	p, err := pagination.New(query, request, &conversations, pagination.Options{MaxSize: 100})
	if err != nil {
		return response.Error(response.ErrInternalError)
	}

	return response.OKWithMeta(conversations, &response.Meta{
		Page:       p.CurrentPage,
		Limit:      p.Size,
		Total:      int64(p.Records),
		TotalPages: p.Pages,
	})
}
