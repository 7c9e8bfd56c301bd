package action

import (
	"context"
	"strings"

	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/memory"
)

type askQuestionArgs struct {
	Question string `json:"question" jsonschema:"description=The clarifying question to ask the human"`
}

// AskQuestion sends a clarifying question. The line is recorded with the
// question intent so the next cycle can see the agent is waiting on an
// answer.
type AskQuestion struct {
	memory    *memory.Service
	messenger Messenger
}

func NewAskQuestion(memory *memory.Service, messenger Messenger) *AskQuestion {
	return &AskQuestion{memory: memory, messenger: messenger}
}

func (a *AskQuestion) Name() string {
	return string(directive.ActionAskQuestion)
}

func (a *AskQuestion) Description() string {
	return "Ask the human a clarifying question when you are missing information you need to respond well."
}

func (a *AskQuestion) Args() any {
	return &askQuestionArgs{}
}

func (a *AskQuestion) Execute(ctx context.Context, agentID string, args map[string]string) error {
	var in askQuestionArgs
	if err := decodeArgs(args, &in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Question) == "" {
		return errors.Wrap(errors.ErrInvalidParams, "ask_question requires a non-empty question")
	}

	if err := a.messenger.Send(ctx, agentID, in.Question); err != nil {
		return err
	}
	return a.memory.RecordQuestion(ctx, agentID, in.Question)
}
