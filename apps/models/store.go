package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by the store. Handlers map these onto the HTTP
// error taxonomy (404 / 409) instead of leaking raw database errors.
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSummaryExists        = errors.New("summary already exists for conversation")
)

// Store is the data-access layer. The database handle is constructor-injected
// so tests can run against an in-memory database and no package carries an
// ambient connection global.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store bound to the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need raw query
// composition, e.g. the paginated admin listing.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping verifies database connectivity with a single round trip.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateConversation assigns a new UUID and persists the conversation.
func (s *Store) CreateConversation(title *string, metadata datatypes.JSON) (*Conversation, error) {
	conversation := Conversation{
		ID:       uuid.New(),
		Title:    title,
		Metadata: metadata,
	}
	if err := s.db.Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetConversationByID fetches a conversation with its messages (chronological
// order), summary and insights eagerly loaded. Returns (nil, nil) when the
// conversation does not exist; absence is not an error.
func (s *Store) GetConversationByID(id uuid.UUID) (*Conversation, error) {
	var conversation Conversation
	err := s.db.
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("timestamp ASC, message_id ASC")
		}).
		Preload("Summary").
		Preload("Insights").
		First(&conversation, "conversation_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetConversationsByUser returns the conversations containing at least one
// message authored by userID, newest first, deduplicated, with offset/limit
// pagination. Callers compute skip = (page-1)*limit.
func (s *Store) GetConversationsByUser(userID string, skip, limit int) ([]Conversation, error) {
	var conversations []Conversation
	err := s.db.
		Joins("JOIN messages ON messages.conversation_id = conversations.conversation_id").
		Where("messages.user_id = ?", userID).
		Group("conversations.conversation_id").
		Order("conversations.created_at DESC, conversations.conversation_id DESC").
		Offset(skip).
		Limit(limit).
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// DeleteConversation removes the conversation and all dependent records in a
// single transaction. Returns false when the conversation does not exist.
func (s *Store) DeleteConversation(id uuid.UUID) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var conversation Conversation
		if err := tx.First(&conversation, "conversation_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := tx.Where("conversation_id = ?", id).Delete(&Insight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&Summary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&conversation).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// CreateMessage persists a message with a server-assigned ID and timestamp.
// Fails with ErrConversationNotFound when the conversation does not exist;
// the existence check runs inside the same transaction as the insert.
func (s *Store) CreateMessage(conversationID uuid.UUID, userID, senderType, content string, metadata datatypes.JSON) (*Message, error) {
	message := Message{
		ConversationID: conversationID,
		UserID:         userID,
		SenderType:     senderType,
		Content:        content,
		Metadata:       metadata,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrConversationNotFound
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversationMessages returns a conversation's messages in ascending
// timestamp order. A non-positive limit disables pagination and returns the
// full history.
func (s *Store) GetConversationMessages(conversationID uuid.UUID, skip, limit int) ([]Message, error) {
	query := s.db.
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, message_id ASC").
		Offset(skip)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CountConversationMessages returns the number of messages in a conversation.
func (s *Store) CountConversationMessages(conversationID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&Message{}).Where("conversation_id = ?", conversationID).Count(&count).Error
	return count, err
}

// CreateSummary persists the summary for a conversation. At most one summary
// may exist per conversation; a second attempt fails with ErrSummaryExists
// and leaves no partial writes behind.
func (s *Store) CreateSummary(conversationID uuid.UUID, summaryText string, modelUsed *string, metadata datatypes.JSON) (*Summary, error) {
	summary := Summary{
		ConversationID: conversationID,
		SummaryText:    summaryText,
		ModelUsed:      modelUsed,
		Metadata:       metadata,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrConversationNotFound
		}
		if err := tx.Model(&Summary{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSummaryExists
		}
		return tx.Create(&summary).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSummaryExists
		}
		return nil, err
	}
	return &summary, nil
}

// GetSummaryByConversation returns the conversation's summary, or (nil, nil)
// when none exists.
func (s *Store) GetSummaryByConversation(conversationID uuid.UUID) (*Summary, error) {
	var summary Summary
	err := s.db.First(&summary, "conversation_id = ?", conversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateInsight persists an AI-derived insight. No uniqueness constraint:
// insights of the same type accumulate across repeated runs.
func (s *Store) CreateInsight(conversationID uuid.UUID, insightType string, data datatypes.JSON, modelUsed *string, metadata datatypes.JSON) (*Insight, error) {
	insight := Insight{
		ConversationID: conversationID,
		InsightType:    insightType,
		InsightData:    data,
		ModelUsed:      modelUsed,
		Metadata:       metadata,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrConversationNotFound
		}
		return tx.Create(&insight).Error
	})
	if err != nil {
		return nil, err
	}
	return &insight, nil
}

// GetInsightsByConversationAndType returns the conversation's insights
// filtered by type, oldest first.
func (s *Store) GetInsightsByConversationAndType(conversationID uuid.UUID, insightType string) ([]Insight, error) {
	var insights []Insight
	err := s.db.
		Where("conversation_id = ? AND insight_type = ?", conversationID, insightType).
		Order("insight_id ASC").
		Find(&insights).Error
	if err != nil {
		return nil, err
	}
	return insights, nil
}

// isUniqueViolation reports whether err looks like a unique constraint
// failure. Matches both MySQL and SQLite wording, plus gorm's own sentinel.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
