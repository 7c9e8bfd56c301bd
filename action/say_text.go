package action

import (
	"context"
	"strings"

	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/memory"
)

type sayTextArgs struct {
	Message string `json:"message" jsonschema:"description=The message text to send to the human"`
}

// SayText sends a plain conversational message and records it as an agent
// line in the dialogue history.
type SayText struct {
	memory    *memory.Service
	messenger Messenger
}

func NewSayText(memory *memory.Service, messenger Messenger) *SayText {
	return &SayText{memory: memory, messenger: messenger}
}

func (a *SayText) Name() string {
	return string(directive.ActionSayText)
}

func (a *SayText) Description() string {
	return "Send a chat message to the human. Use this for replies, reactions, and anything conversational."
}

func (a *SayText) Args() any {
	return &sayTextArgs{}
}

func (a *SayText) Execute(ctx context.Context, agentID string, args map[string]string) error {
	var in sayTextArgs
	if err := decodeArgs(args, &in); err != nil {
		return err
	}
	if strings.TrimSpace(in.Message) == "" {
		return errors.Wrap(errors.ErrInvalidParams, "say_text requires a non-empty message")
	}

	if err := a.messenger.Send(ctx, agentID, in.Message); err != nil {
		return err
	}
	return a.memory.RecordDialogue(ctx, agentID, entity.SpeakerAgent, in.Message)
}
