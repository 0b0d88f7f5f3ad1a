package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Insight type constants for the insights the service produces itself.
// The column is free-form; external writers may record other types.
const (
	InsightTypeSentiment = "sentiment"
	InsightTypeKeywords  = "keywords"
)

// Insight is a structured AI-derived observation about a conversation,
// tagged by type. Multiple insights of the same type may accumulate.
type Insight struct {
	ID             uint64         `gorm:"column:insight_id;primaryKey;autoIncrement" json:"insight_id"`
	ConversationID uuid.UUID      `gorm:"column:conversation_id;type:char(36);not null;index" json:"conversation_id"`
	InsightType    string         `gorm:"column:insight_type;size:100;not null;index" json:"insight_type"`
	InsightData    datatypes.JSON `gorm:"column:insight_data;type:json;not null" json:"insight_data"`
	ModelUsed      *string        `gorm:"column:model_used;size:255" json:"model_used"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"-"`
}

func (Insight) TableName() string {
	return "insights"
}
