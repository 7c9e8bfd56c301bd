package agent

import (
	"context"

	"github.com/curio-chat/curio/action"
	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/curio-chat/curio/llm"
	"github.com/curio-chat/curio/memory"
	"github.com/curio-chat/curio/prompt"
)

// Orchestrator drives one agent cycle per inbound message. The cycle either
// completes through to a dispatched action, or aborts before any side effect
// beyond recording the human's line.
type Orchestrator struct {
	logger     *mylog.Logger
	character  config.Character
	memory     *memory.Service
	personas   *PersonaStore
	llm        llm.Client
	composer   *prompt.Composer
	dispatcher *action.Dispatcher
}

func NewOrchestrator(
	logger *mylog.Logger,
	character config.Character,
	memoryService *memory.Service,
	personas *PersonaStore,
	llmClient llm.Client,
	composer *prompt.Composer,
	dispatcher *action.Dispatcher,
) *Orchestrator {
	return &Orchestrator{
		logger:     logger,
		character:  character,
		memory:     memoryService,
		personas:   personas,
		llm:        llmClient,
		composer:   composer,
		dispatcher: dispatcher,
	}
}

// RegisterAgent sets up the per-agent state. Idempotent: re-registering an
// existing agent never wipes its memory or behavior.
func (o *Orchestrator) RegisterAgent(ctx context.Context, agentID string) error {
	if agentID == "" {
		return errors.Wrap(errors.ErrInvalidParams, "agent id must not be empty")
	}
	if err := o.memory.Initialize(ctx, agentID); err != nil {
		return err
	}
	return o.personas.Initialize(ctx, agentID)
}

// HearText runs one full decision cycle for an inbound human message.
func (o *Orchestrator) HearText(ctx context.Context, agentID, text string) error {
	if agentID == "" {
		return errors.Wrap(errors.ErrInvalidParams, "agent id must not be empty")
	}
	if text == "" {
		return errors.Wrap(errors.ErrInvalidParams, "message must not be empty")
	}

	if err := o.memory.RecordDialogue(ctx, agentID, entity.SpeakerHuman, text); err != nil {
		return err
	}

	decisionPrompt, err := o.composeDecision(ctx, agentID)
	if err != nil {
		return err
	}

	raw, err := o.llm.Complete(ctx, decisionPrompt)
	if err != nil {
		return errors.Wrap(err, "decision request failed")
	}

	dir, err := directive.Parse(raw)
	if err != nil {
		o.logger.Error("failed to parse model decision", "agent_id", agentID, "err", err)
		return err
	}
	if dir.DebugNote != "" {
		o.logger.Debug("model decision", "agent_id", agentID, "action", dir.ActionName, "note", dir.DebugNote)
	}

	if err := o.applyUpdates(ctx, agentID, dir); err != nil {
		return err
	}

	return o.dispatcher.Dispatch(ctx, agentID, dir)
}

func (o *Orchestrator) composeDecision(ctx context.Context, agentID string) (string, error) {
	behavior, err := o.personas.Behavior(ctx, agentID)
	if err != nil {
		return "", err
	}
	profile, err := o.memory.HumanProfileText(ctx, agentID)
	if err != nil {
		return "", err
	}
	conversation, err := o.memory.CurrentConversationText(ctx, agentID)
	if err != nil {
		return "", err
	}

	return o.composer.ComposeDecision(prompt.DecisionValues{
		Behavior:     behavior,
		HumanDetails: profile,
		Actions:      o.dispatcher.Specs(),
		Conversation: conversation,
	})
}

// applyUpdates writes the memory side effects the model requested before the
// action runs, so a reply composed in the same cycle can already rely on
// them.
func (o *Orchestrator) applyUpdates(ctx context.Context, agentID string, dir *directive.Directive) error {
	for field, value := range dir.FactUpdates {
		if err := o.memory.UpdateProfileField(ctx, agentID, field, value); err != nil {
			return err
		}
		o.logger.Info("profile field updated", "agent_id", agentID, "field", field)
	}

	if dir.BehaviorUpdate != "" {
		if err := o.personas.UpdateBehavior(ctx, agentID, dir.BehaviorUpdate); err != nil {
			return err
		}
		o.logger.Info("behavior updated", "agent_id", agentID)
	}
	return nil
}
