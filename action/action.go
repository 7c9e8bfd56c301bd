// Package action holds the concrete things the agent can do once the model
// has decided. Each action validates its own arguments; the dispatcher is the
// boundary where unknown names and execution failures stop propagating.
package action

import (
	"context"

	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/prompt"
	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
)

// Messenger delivers an outbound agent message to the human's chat surface.
type Messenger interface {
	Send(ctx context.Context, agentID, text string) error
}

// Action is one executable capability. Args returns a pointer to the zero
// argument struct; its jsonschema tags document each parameter in the action
// catalog the model sees.
type Action interface {
	Name() string
	Description() string
	Args() any
	Execute(ctx context.Context, agentID string, args map[string]string) error
}

// Spec reflects an action's argument struct into the catalog entry rendered
// into the decision prompt.
func Spec(a Action) prompt.ActionSpec {
	spec := prompt.ActionSpec{
		Name:        a.Name(),
		Description: a.Description(),
	}

	args := a.Args()
	if args == nil {
		return spec
	}

	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(args)
	if schema.Properties == nil || schema.Properties.Len() == 0 {
		return spec
	}

	spec.Params = make(map[string]string, schema.Properties.Len())
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		spec.Params[pair.Key] = pair.Value.Description
	}
	return spec
}

// decodeArgs maps the directive's string arguments onto an action's typed
// struct. Weak typing lets "3" land in an int field, which the model produces
// routinely.
func decodeArgs(args map[string]string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if err := decoder.Decode(args); err != nil {
		return errors.Wrapf(errors.ErrInvalidParams, "%v", err)
	}
	return nil
}
