package memory

import (
	"context"

	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultWindow = 20

// ShortTermStore keeps the bounded recent-dialogue window per agent. The
// whole window lives in one row, so append is a read-modify-write inside a
// transaction: eviction is strict FIFO and concurrent appends for different
// agents never touch each other's rows.
type ShortTermStore struct {
	db     *gorm.DB
	window int
}

func NewShortTermStore(db *gorm.DB, window int) *ShortTermStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &ShortTermStore{db: db, window: window}
}

// Initialize creates an empty buffer for the agent. Calling it again is a
// no-op: an existing buffer is never wiped.
func (s *ShortTermStore) Initialize(ctx context.Context, agentID string) error {
	buffer := entity.ConversationBuffer{
		AgentID: agentID,
		Entries: datatypes.NewJSONSlice([]entity.DialogueEntry{}),
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&buffer).Error; err != nil {
		return errors.Wrapf(err, "failed to initialize conversation buffer for agent %s", agentID)
	}
	return nil
}

func (s *ShortTermStore) Append(ctx context.Context, agentID string, entry entity.DialogueEntry) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var buffer entity.ConversationBuffer
		if err := tx.Where("agent_id = ?", agentID).First(&buffer).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			buffer = entity.ConversationBuffer{AgentID: agentID}
		}

		entries := append([]entity.DialogueEntry(buffer.Entries), entry)
		if len(entries) > s.window {
			entries = entries[len(entries)-s.window:]
		}
		buffer.Entries = datatypes.NewJSONSlice(entries)

		return tx.Save(&buffer).Error
	})
	if err != nil {
		return errors.Wrapf(err, "failed to append dialogue for agent %s", agentID)
	}
	return nil
}

// Recent returns the window oldest first. A missing buffer reads as empty.
func (s *ShortTermStore) Recent(ctx context.Context, agentID string) ([]entity.DialogueEntry, error) {
	var buffer entity.ConversationBuffer
	if err := s.db.WithContext(ctx).Where("agent_id = ?", agentID).First(&buffer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to load conversation buffer for agent %s", agentID)
	}
	return buffer.Entries, nil
}
