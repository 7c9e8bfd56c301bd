package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxFactValueLen = 4096

// FactStore is the open-schema long-term profile: what we know about the
// human, keyed by field names the decision layer picks itself. Keys are
// validated structurally only.
type FactStore struct {
	db   *gorm.DB
	seed map[string]string
}

func NewFactStore(db *gorm.DB, seed map[string]string) *FactStore {
	if seed == nil {
		seed = map[string]string{}
	}
	return &FactStore{db: db, seed: seed}
}

func (s *FactStore) seedCopy() map[string]string {
	fields := make(map[string]string, len(s.seed))
	for k, v := range s.seed {
		fields[k] = v
	}
	return fields
}

// Initialize persists the seed template for a new agent. Existing profiles
// are left untouched.
func (s *FactStore) Initialize(ctx context.Context, agentID string) error {
	profile := entity.UserProfile{
		AgentID: agentID,
		Fields:  datatypes.NewJSONType(s.seedCopy()),
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&profile).Error; err != nil {
		return errors.Wrapf(err, "failed to initialize profile for agent %s", agentID)
	}
	return nil
}

// Get returns the profile fields, falling back to a copy of the seed template
// when no row exists yet.
func (s *FactStore) Get(ctx context.Context, agentID string) (map[string]string, error) {
	var profile entity.UserProfile
	if err := s.db.WithContext(ctx).Where("agent_id = ?", agentID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.seedCopy(), nil
		}
		return nil, errors.Wrapf(err, "failed to load profile for agent %s", agentID)
	}
	fields := profile.Fields.Data()
	if fields == nil {
		fields = s.seedCopy()
	}
	return fields, nil
}

func (s *FactStore) SetField(ctx context.Context, agentID, field, value string) error {
	if strings.TrimSpace(field) == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "profile field name is empty")
	}
	if len(value) > maxFactValueLen {
		value = value[:maxFactValueLen]
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile entity.UserProfile
		if err := tx.Where("agent_id = ?", agentID).First(&profile).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			profile = entity.UserProfile{AgentID: agentID, Fields: datatypes.NewJSONType(s.seedCopy())}
		}

		fields := profile.Fields.Data()
		if fields == nil {
			fields = s.seedCopy()
		}
		fields[field] = value
		profile.Fields = datatypes.NewJSONType(fields)

		return tx.Save(&profile).Error
	})
	if err != nil {
		return errors.Wrapf(err, "failed to set profile field %q for agent %s", field, agentID)
	}
	return nil
}

// AsPromptText renders the profile as a stable text block for prompt
// embedding. Keys are sorted so the output is deterministic.
func (s *FactStore) AsPromptText(ctx context.Context, agentID string) (string, error) {
	fields, err := s.Get(ctx, agentID)
	if err != nil {
		return "", err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\n", k, fields[k])
	}
	return sb.String(), nil
}
