package action

import (
	"context"

	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/curio-chat/curio/prompt"
)

// Dispatcher routes a parsed directive to its action. An unrecognized action
// name is reported and ignored, never executed and never fatal: the model
// sometimes invents names and the conversation must survive that.
type Dispatcher struct {
	logger  *mylog.Logger
	order   []string
	actions map[string]Action
}

func NewDispatcher(logger *mylog.Logger, actions ...Action) *Dispatcher {
	d := &Dispatcher{
		logger:  logger,
		actions: make(map[string]Action, len(actions)),
	}
	for _, a := range actions {
		d.order = append(d.order, a.Name())
		d.actions[a.Name()] = a
	}
	return d
}

// Specs returns the action catalog in registration order.
func (d *Dispatcher) Specs() []prompt.ActionSpec {
	specs := make([]prompt.ActionSpec, 0, len(d.order))
	for _, name := range d.order {
		specs = append(specs, Spec(d.actions[name]))
	}
	return specs
}

func (d *Dispatcher) Dispatch(ctx context.Context, agentID string, dir *directive.Directive) error {
	act, ok := d.actions[dir.ActionName]
	if !ok || dir.Action() == directive.ActionUnknown {
		d.logger.Warn("model chose an action that does not exist",
			"agent_id", agentID,
			"action", dir.ActionName)
		return nil
	}

	d.logger.Info("dispatching action", "agent_id", agentID, "action", act.Name())
	if err := act.Execute(ctx, agentID, dir.ActionArgs); err != nil {
		d.logger.Error("action execution failed",
			"agent_id", agentID,
			"action", act.Name(),
			"err", err)
		return errors.Wrapf(err, "action %s failed", act.Name())
	}
	return nil
}
