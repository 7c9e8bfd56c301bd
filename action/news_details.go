package action

import (
	"context"
	"strings"

	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/llm"
	"github.com/curio-chat/curio/memory"
	"github.com/curio-chat/curio/prompt"
	"github.com/mokiat/gog"
)

const (
	defaultDetailsTopK = 3
	noDetailsMessage   = "Hmm, I don't think I've shared anything about that yet. Want me to go look for fresh news instead?"
)

type newsDetailsArgs struct {
	Query string `json:"query" jsonschema:"description=What the human wants to know more about"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"description=How many already-shared articles to draw from"`
}

// FetchNewsDetails answers a follow-up question using only articles this
// agent already shared, retrieved by semantic similarity to the question.
type FetchNewsDetails struct {
	memory    *memory.Service
	llm       llm.Client
	composer  *prompt.Composer
	messenger Messenger
}

func NewFetchNewsDetails(memory *memory.Service, llmClient llm.Client, composer *prompt.Composer, messenger Messenger) *FetchNewsDetails {
	return &FetchNewsDetails{
		memory:    memory,
		llm:       llmClient,
		composer:  composer,
		messenger: messenger,
	}
}

func (a *FetchNewsDetails) Name() string {
	return string(directive.ActionFetchNewsDetails)
}

func (a *FetchNewsDetails) Description() string {
	return "Give the human more detail about news you already shared with them. Use when they follow up on a story."
}

func (a *FetchNewsDetails) Args() any {
	return &newsDetailsArgs{}
}

func (a *FetchNewsDetails) Execute(ctx context.Context, agentID string, args map[string]string) error {
	var in newsDetailsArgs
	if err := decodeArgs(args, &in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Query) == "" {
		return errors.Wrap(errors.ErrInvalidParams, "fetch_news_details requires a query")
	}
	if in.TopK < 1 {
		in.TopK = defaultDetailsTopK
	}

	items, err := a.memory.RelevantProcessedNews(ctx, agentID, in.Query, in.TopK)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return a.deliver(ctx, agentID, noDetailsMessage)
	}

	resolved := gog.Map(items, func(item *entity.NewsItem) entity.NewsItem {
		return *item
	})

	detailsPrompt, err := a.composer.ComposeNewsDetails(prompt.NewsDetailsValues{
		Query: in.Query,
		Items: resolved,
	})
	if err != nil {
		return err
	}

	answer, err := a.llm.Complete(ctx, detailsPrompt)
	if err != nil {
		return errors.Wrap(err, "failed to generate news details")
	}
	return a.deliver(ctx, agentID, answer)
}

func (a *FetchNewsDetails) deliver(ctx context.Context, agentID, text string) error {
	if err := a.messenger.Send(ctx, agentID, text); err != nil {
		return err
	}
	return a.memory.RecordDialogue(ctx, agentID, entity.SpeakerAgent, text)
}
