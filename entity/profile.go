package entity

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile is the open-schema long-term fact profile for one agent. Field
// names are chosen by the decision layer, so no fixed columns beyond the map.
type UserProfile struct {
	AgentID   string                                 `gorm:"primaryKey"`
	Fields    datatypes.JSONType[map[string]string]  `gorm:"not null"`
	UpdatedAt time.Time
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
