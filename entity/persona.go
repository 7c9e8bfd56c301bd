package entity

import (
	"time"
)

// Persona holds the mutable per-agent conversational behavior text. The base
// personality comes from the character file; this row carries the part the
// decision layer is allowed to rewrite via behavior_update.
type Persona struct {
	AgentID   string `gorm:"primaryKey"`
	Behavior  string
	UpdatedAt time.Time
}

func (Persona) TableName() string {
	return "personas"
}
