package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chatlog-io/chatlog-backend/apps/events"
)

// Sender type constants. The column accepts arbitrary values; these cover
// the senders the service itself produces.
const (
	SenderTypeUser      = "user"
	SenderTypeAssistant = "assistant"
)

// Conversation groups the messages exchanged between a user and a
// counterparty. Identified by a UUID assigned at creation.
type Conversation struct {
	ID        uuid.UUID      `gorm:"column:conversation_id;type:char(36);primaryKey" json:"conversation_id"`
	Title     *string        `gorm:"column:title;type:text" json:"title"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Messages []Message `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Summary  *Summary  `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"summary,omitempty"`
	Insights []Insight `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"insights,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message is a single chat message inside a conversation. Messages are
// immutable after creation; the timestamp is always server-assigned.
type Message struct {
	ID             uint64         `gorm:"column:message_id;primaryKey;autoIncrement" json:"message_id"`
	ConversationID uuid.UUID      `gorm:"column:conversation_id;type:char(36);not null;index" json:"conversation_id"`
	UserID         string         `gorm:"column:user_id;size:255;not null;index" json:"user_id"`
	SenderType     string         `gorm:"column:sender_type;size:50;not null" json:"sender_type"`
	Content        string         `gorm:"column:content;type:text;not null" json:"content"`
	Timestamp      time.Time      `gorm:"column:timestamp;not null;index;autoCreateTime" json:"timestamp"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`

	// Relationships
	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// GORM hooks: broadcast lifecycle events to NATS when connected. The hooks
// are best-effort; a missing broker never fails the enclosing transaction.

func (c *Conversation) AfterCreate(tx *gorm.DB) error {
	if !events.IsConnected() {
		return nil
	}
	go func() {
		subject := fmt.Sprintf("conversation.%s", c.ID)
		data, _ := json.Marshal(map[string]interface{}{
			"event":        "conversation.created",
			"conversation": c,
		})
		if err := events.Publish(subject, data); err != nil {
			log.Error("Failed to publish conversation.created: %v", err)
		}
	}()
	return nil
}

func (c *Conversation) AfterDelete(tx *gorm.DB) error {
	if !events.IsConnected() {
		return nil
	}
	go func() {
		subject := fmt.Sprintf("conversation.%s", c.ID)
		data, _ := json.Marshal(map[string]interface{}{
			"event":           "conversation.deleted",
			"conversation_id": c.ID,
		})
		if err := events.Publish(subject, data); err != nil {
			log.Error("Failed to publish conversation.deleted: %v", err)
		}
	}()
	return nil
}

func (m *Message) AfterCreate(tx *gorm.DB) error {
	if !events.IsConnected() {
		return nil
	}
	go func() {
		subject := fmt.Sprintf("conversation.%s", m.ConversationID)
		data, _ := json.Marshal(map[string]interface{}{
			"event":       "message.created",
			"message":     m,
			"sender_type": m.SenderType,
		})
		if err := events.Publish(subject, data); err != nil {
			log.Error("Failed to publish message.created: %v", err)
		}
	}()
	return nil
}
