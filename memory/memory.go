// Package memory composes the per-agent stores — bounded dialogue window,
// durable dialogue log, open-schema fact profile, shared news archive, and
// the semantic index — behind one facade the decision layer talks to.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// retrievalFactor over-fetches ranked ids so the processed-set post-filter
// still has topK survivors to choose from.
const retrievalFactor = 3

type Service struct {
	logger *slog.Logger

	db        *gorm.DB
	shortTerm *ShortTermStore
	facts     *FactStore
	archive   *NewsArchive
	index     SemanticIndex

	now func() time.Time
}

func NewService(logger *slog.Logger, db *gorm.DB, shortTerm *ShortTermStore, facts *FactStore, archive *NewsArchive, index SemanticIndex) *Service {
	return &Service{
		logger:    logger,
		db:        db,
		shortTerm: shortTerm,
		facts:     facts,
		archive:   archive,
		index:     index,
		now:       time.Now,
	}
}

// Initialize seeds the short-term buffer and fact profile. Safe to call
// repeatedly: re-registration never wipes existing state.
func (s *Service) Initialize(ctx context.Context, agentID string) error {
	if err := s.shortTerm.Initialize(ctx, agentID); err != nil {
		return err
	}
	return s.facts.Initialize(ctx, agentID)
}

// RecordDialogue timestamps the line and appends it to both the bounded
// window and the durable log.
func (s *Service) RecordDialogue(ctx context.Context, agentID string, speaker entity.Speaker, text string) error {
	return s.recordDialogue(ctx, agentID, speaker, text, "")
}

// RecordQuestion records an agent line tagged as a clarifying question.
func (s *Service) RecordQuestion(ctx context.Context, agentID string, text string) error {
	return s.recordDialogue(ctx, agentID, entity.SpeakerAgent, text, "question")
}

func (s *Service) recordDialogue(ctx context.Context, agentID string, speaker entity.Speaker, text, intent string) error {
	entry := entity.DialogueEntry{
		Timestamp: s.now(),
		Speaker:   speaker,
		Text:      text,
		Intent:    intent,
	}

	if err := s.shortTerm.Append(ctx, agentID, entry); err != nil {
		return err
	}

	record := entity.DialogueRecord{
		AgentID:   agentID,
		Timestamp: entry.Timestamp,
		Speaker:   speaker,
		Text:      text,
		Intent:    intent,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrapf(err, "failed to append dialogue log for agent %s", agentID)
	}
	return nil
}

// CurrentConversationText renders the recent window oldest first, one line
// per entry, for prompt embedding.
func (s *Service) CurrentConversationText(ctx context.Context, agentID string) (string, error) {
	entries, err := s.shortTerm.Recent(ctx, agentID)
	if err != nil {
		return "", err
	}

	lines := lo.Map(entries, func(e entity.DialogueEntry, _ int) string {
		return fmt.Sprintf("[%s] %s: %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Speaker, e.Text)
	})
	return strings.Join(lines, "\n"), nil
}

func (s *Service) HumanProfileText(ctx context.Context, agentID string) (string, error) {
	return s.facts.AsPromptText(ctx, agentID)
}

func (s *Service) UpdateProfileField(ctx context.Context, agentID, field, value string) error {
	return s.facts.SetField(ctx, agentID, field, value)
}

// SaveNews archives the item (dedup on link) and indexes its content. The
// item is NOT auto-marked processed; actions decide that after they have
// actually shown it.
func (s *Service) SaveNews(ctx context.Context, agentID string, item *entity.NewsItem) (string, error) {
	newsID, err := s.archive.Save(ctx, item)
	if err != nil {
		return "", err
	}

	text := item.Content
	if text == "" {
		text = item.Title + "\n" + item.Summary
	}
	if err := s.index.Index(ctx, newsID, text); err != nil {
		// The archive row is the source of truth; a missed index entry only
		// degrades retrieval.
		s.logger.Warn("failed to index news content",
			slog.String("agent_id", agentID),
			slog.String("news_id", newsID),
			slog.Any("error", err))
	}

	return newsID, nil
}

func (s *Service) LinkAlreadyKnown(ctx context.Context, link string) (string, error) {
	id, err := s.archive.FindByLink(ctx, link)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (s *Service) News(ctx context.Context, newsID string) (*entity.NewsItem, error) {
	return s.archive.Get(ctx, newsID)
}

func (s *Service) IsProcessedBy(ctx context.Context, agentID, newsID string) (bool, error) {
	return s.archive.HasProcessed(ctx, agentID, newsID)
}

func (s *Service) MarkProcessed(ctx context.Context, agentID, newsID string) error {
	return s.archive.MarkProcessed(ctx, agentID, newsID)
}

func (s *Service) ProcessedIDs(ctx context.Context, agentID string) ([]string, error) {
	return s.archive.ProcessedIDs(ctx, agentID)
}

// RelevantProcessedNews ranks by the semantic index, then keeps only items
// this agent has already processed, resolved to full archive items. Items
// the index ranks higher but the agent never saw are dropped.
func (s *Service) RelevantProcessedNews(ctx context.Context, agentID, query string, topK int) ([]*entity.NewsItem, error) {
	if topK < 1 {
		topK = 1
	}

	ranked, err := s.index.Query(ctx, query, topK*retrievalFactor)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	processedIDs, err := s.archive.ProcessedIDs(ctx, agentID)
	if err != nil {
		return nil, err
	}
	processed := lo.SliceToMap(processedIDs, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	items := make([]*entity.NewsItem, 0, topK)
	for _, id := range ranked {
		if _, ok := processed[id]; !ok {
			continue
		}
		item, err := s.archive.Get(ctx, id)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				s.logger.Warn("semantic index entry without archive row", slog.String("news_id", id))
				continue
			}
			return nil, err
		}
		items = append(items, item)
		if len(items) >= topK {
			break
		}
	}
	return items, nil
}
