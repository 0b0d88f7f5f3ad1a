package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Summary stores the AI-generated condensed text of a conversation.
// The unique index on conversation_id enforces at most one summary per
// conversation; re-summarizing is rejected as a conflict.
type Summary struct {
	ID             uint64         `gorm:"column:summary_id;primaryKey;autoIncrement" json:"summary_id"`
	ConversationID uuid.UUID      `gorm:"column:conversation_id;type:char(36);not null;uniqueIndex" json:"conversation_id"`
	SummaryText    string         `gorm:"column:summary_text;type:text;not null" json:"summary_text"`
	ModelUsed      *string        `gorm:"column:model_used;size:255" json:"model_used"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"-"`
}

func (Summary) TableName() string {
	return "summaries"
}
