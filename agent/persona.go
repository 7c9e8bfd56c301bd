// Package agent runs the decision cycle: it hears what the human said,
// assembles everything the model needs to decide, and executes exactly one
// resulting action per cycle.
package agent

import (
	"context"
	"time"

	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersonaStore keeps each agent's adjustable behavior instruction. The base
// character never changes; this is the layer the human steers with requests
// like "keep it short".
type PersonaStore struct {
	db              *gorm.DB
	defaultBehavior string
}

func NewPersonaStore(db *gorm.DB, defaultBehavior string) *PersonaStore {
	return &PersonaStore{db: db, defaultBehavior: defaultBehavior}
}

// Initialize seeds the default behavior without overwriting an existing one.
func (s *PersonaStore) Initialize(ctx context.Context, agentID string) error {
	persona := entity.Persona{
		AgentID:   agentID,
		Behavior:  s.defaultBehavior,
		UpdatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&persona).Error; err != nil {
		return errors.Wrapf(err, "failed to initialize persona for agent %s", agentID)
	}
	return nil
}

// Behavior returns the agent's current behavior instruction, falling back to
// the default when the agent was never registered.
func (s *PersonaStore) Behavior(ctx context.Context, agentID string) (string, error) {
	var persona entity.Persona
	if err := s.db.WithContext(ctx).First(&persona, "agent_id = ?", agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultBehavior, nil
		}
		return "", errors.Wrapf(err, "failed to load persona for agent %s", agentID)
	}
	return persona.Behavior, nil
}

func (s *PersonaStore) UpdateBehavior(ctx context.Context, agentID, behavior string) error {
	persona := entity.Persona{
		AgentID:   agentID,
		Behavior:  behavior,
		UpdatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Save(&persona).Error; err != nil {
		return errors.Wrapf(err, "failed to update behavior for agent %s", agentID)
	}
	return nil
}
