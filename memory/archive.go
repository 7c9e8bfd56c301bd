package memory

import (
	"context"
	"time"

	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsArchive is the durable cross-agent news store. Link is the global
// dedup key; processed markers are per (agent, item) and idempotent.
type NewsArchive struct {
	db *gorm.DB
}

func NewNewsArchive(db *gorm.DB) *NewsArchive {
	return &NewsArchive{db: db}
}

// FindByLink resolves a link to its canonical news id, or ErrNotFound.
func (a *NewsArchive) FindByLink(ctx context.Context, link string) (string, error) {
	var item entity.NewsItem
	if err := a.db.WithContext(ctx).Select("id").Where("link = ?", link).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.Wrapf(errors.ErrNotFound, "no news item for link %s", link)
		}
		return "", errors.Wrapf(err, "failed to look up link %s", link)
	}
	return item.ID, nil
}

// Save stores the item, deduplicating on link: an insert-if-absent followed
// by a lookup, so concurrent saves of the same link from different agents
// resolve to a single stored item and both callers get the same id.
func (a *NewsArchive) Save(ctx context.Context, item *entity.NewsItem) (string, error) {
	if item.Link == "" {
		return "", errors.Wrapf(errors.ErrInvalidParams, "news item has no link")
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "link"}}, DoNothing: true}).
		Create(item).Error; err != nil {
		return "", errors.Wrapf(err, "failed to save news item for link %s", item.Link)
	}

	// The insert may have been a no-op on a link collision; the row in the
	// archive owns the canonical id either way.
	id, err := a.FindByLink(ctx, item.Link)
	if err != nil {
		return "", err
	}
	item.ID = id
	return id, nil
}

func (a *NewsArchive) Get(ctx context.Context, newsID string) (*entity.NewsItem, error) {
	var item entity.NewsItem
	if err := a.db.WithContext(ctx).Where("id = ?", newsID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(errors.ErrNotFound, "no news item %s", newsID)
		}
		return nil, errors.Wrapf(err, "failed to load news item %s", newsID)
	}
	return &item, nil
}

func (a *NewsArchive) MarkProcessed(ctx context.Context, agentID, newsID string) error {
	marker := entity.ProcessedNews{
		AgentID:     agentID,
		NewsID:      newsID,
		ProcessedAt: time.Now(),
	}
	if err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&marker).Error; err != nil {
		return errors.Wrapf(err, "failed to mark news %s processed by agent %s", newsID, agentID)
	}
	return nil
}

func (a *NewsArchive) HasProcessed(ctx context.Context, agentID, newsID string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&entity.ProcessedNews{}).
		Where("agent_id = ? AND news_id = ?", agentID, newsID).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "failed to check processed marker for agent %s", agentID)
	}
	return count > 0, nil
}

func (a *NewsArchive) ProcessedIDs(ctx context.Context, agentID string) ([]string, error) {
	var ids []string
	if err := a.db.WithContext(ctx).
		Model(&entity.ProcessedNews{}).
		Where("agent_id = ?", agentID).
		Pluck("news_id", &ids).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list processed news for agent %s", agentID)
	}
	return ids, nil
}
