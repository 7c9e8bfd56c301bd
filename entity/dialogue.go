package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Speaker string

const (
	SpeakerHuman  Speaker = "Human"
	SpeakerAgent  Speaker = "Agent"
	SpeakerSystem Speaker = "System"
)

// DialogueEntry is one timestamped line of conversation. It is stored both
// inside the bounded per-agent window and in the durable dialogue log.
type DialogueEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
}

// ConversationBuffer holds the bounded recent-dialogue window for one agent.
// The whole window is read-modified-written as a single row so eviction stays
// atomic per agent.
type ConversationBuffer struct {
	AgentID   string                                `gorm:"primaryKey"`
	Entries   datatypes.JSONSlice[DialogueEntry]    `gorm:"not null"`
	UpdatedAt time.Time
}

func (ConversationBuffer) TableName() string {
	return "conversation_buffers"
}

// DialogueRecord is the append-only durable log line.
type DialogueRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	AgentID   string    `gorm:"index;not null"`
	Timestamp time.Time `gorm:"not null"`
	Speaker   Speaker   `gorm:"not null"`
	Text      string    `gorm:"not null"`
	Intent    string
	CreatedAt time.Time
}

func (DialogueRecord) TableName() string {
	return "dialogue_records"
}
