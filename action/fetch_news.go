package action

import (
	"context"

	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/curio-chat/curio/llm"
	"github.com/curio-chat/curio/memory"
	"github.com/curio-chat/curio/news"
	"github.com/curio-chat/curio/prompt"
)

const nothingNewMessage = "I went looking for fresh AI news, but there's nothing new since we last talked. I'll keep an eye out!"

// FetchLatestNews runs the full news cycle: pull feed candidates, drop what
// this agent has already shared, archive what is genuinely new, summarize
// the survivors in the agent's voice, and deliver the summary. Items are
// marked processed only after the summary was actually sent, so a failed
// send leaves them eligible for the next cycle.
type FetchLatestNews struct {
	logger    *mylog.Logger
	memory    *memory.Service
	producer  news.Producer
	llm       llm.Client
	composer  *prompt.Composer
	messenger Messenger
}

func NewFetchLatestNews(
	logger *mylog.Logger,
	memory *memory.Service,
	producer news.Producer,
	llmClient llm.Client,
	composer *prompt.Composer,
	messenger Messenger,
) *FetchLatestNews {
	return &FetchLatestNews{
		logger:    logger,
		memory:    memory,
		producer:  producer,
		llm:       llmClient,
		composer:  composer,
		messenger: messenger,
	}
}

func (a *FetchLatestNews) Name() string {
	return string(directive.ActionFetchLatestNews)
}

func (a *FetchLatestNews) Description() string {
	return "Fetch the latest AI news the human has not seen yet and share a short summary of it."
}

func (a *FetchLatestNews) Args() any {
	return nil
}

func (a *FetchLatestNews) Execute(ctx context.Context, agentID string, _ map[string]string) error {
	candidates, err := a.producer.FetchCandidates(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch news candidates")
	}

	fresh, err := a.collectFresh(ctx, agentID, candidates)
	if err != nil {
		return err
	}

	if len(fresh) == 0 {
		a.logger.Info("no unseen news for agent", "agent_id", agentID, "candidates", len(candidates))
		return a.deliver(ctx, agentID, nothingNewMessage)
	}

	profile, err := a.memory.HumanProfileText(ctx, agentID)
	if err != nil {
		return err
	}

	summaryPrompt, err := a.composer.ComposeNewsSummary(prompt.NewsSummaryValues{
		HumanDetails: profile,
		Items:        fresh,
	})
	if err != nil {
		return err
	}

	summary, err := a.llm.Complete(ctx, summaryPrompt)
	if err != nil {
		return errors.Wrap(err, "failed to summarize news")
	}

	if err := a.deliver(ctx, agentID, summary); err != nil {
		return err
	}

	for _, item := range fresh {
		if err := a.memory.MarkProcessed(ctx, agentID, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// collectFresh decides the fate of each candidate: already shared with this
// agent means skip, archived but unshared means include as-is, and brand new
// means fetch the body and archive it. Articles whose body cannot be
// extracted are omitted rather than shared half-empty.
func (a *FetchLatestNews) collectFresh(ctx context.Context, agentID string, candidates []news.Candidate) ([]entity.NewsItem, error) {
	var fresh []entity.NewsItem
	for _, candidate := range candidates {
		knownID, err := a.memory.LinkAlreadyKnown(ctx, candidate.Link)
		if err != nil {
			return nil, err
		}

		if knownID != "" {
			processed, err := a.memory.IsProcessedBy(ctx, agentID, knownID)
			if err != nil {
				return nil, err
			}
			if processed {
				continue
			}
			item, err := a.memory.News(ctx, knownID)
			if err != nil {
				return nil, err
			}
			fresh = append(fresh, *item)
			continue
		}

		body, err := a.producer.FetchBody(ctx, candidate)
		if err != nil {
			a.logger.Warn("failed to fetch article body", "link", candidate.Link, "err", err)
			continue
		}
		if body == "" {
			a.logger.Warn("article body empty, omitting", "link", candidate.Link)
			continue
		}

		item := entity.NewsItem{
			Title:       candidate.Title,
			Summary:     candidate.Summary,
			Content:     body,
			Link:        candidate.Link,
			Source:      candidate.Source,
			PublishedAt: candidate.PublishedAt,
		}
		newsID, err := a.memory.SaveNews(ctx, agentID, &item)
		if err != nil {
			return nil, err
		}
		item.ID = newsID
		fresh = append(fresh, item)
	}
	return fresh, nil
}

func (a *FetchLatestNews) deliver(ctx context.Context, agentID, text string) error {
	if err := a.messenger.Send(ctx, agentID, text); err != nil {
		return err
	}
	return a.memory.RecordDialogue(ctx, agentID, entity.SpeakerAgent, text)
}
