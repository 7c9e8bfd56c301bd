// Package directive turns the model's free-text response into the structured
// action decision the orchestrator executes. The input is adversarial: a
// non-deterministic text generator that wraps JSON in fences, apologies, and
// trailing commas. Repair is an explicit pipeline of named steps so each one
// stays independently testable.
package directive

import (
	"fmt"
)

// ActionType is the closed set of actions the dispatcher knows about. Any
// unrecognized name maps to ActionUnknown rather than failing the parse.
type ActionType string

const (
	ActionSayText          ActionType = "say_text"
	ActionAskQuestion      ActionType = "ask_question"
	ActionFetchLatestNews  ActionType = "fetch_ai_news"
	ActionFetchNewsDetails ActionType = "fetch_news_details"
	ActionUnknown          ActionType = "unknown"
)

// Directive is the per-cycle decision: one action, its arguments, and any
// memory updates the model wants applied before dispatch. It is never
// persisted.
type Directive struct {
	ActionName     string            `json:"action_name"`
	ActionArgs     map[string]string `json:"action_args,omitempty"`
	FactUpdates    map[string]string `json:"fact_updates,omitempty"`
	BehaviorUpdate string            `json:"behavior_update,omitempty"`
	DebugNote      string            `json:"debug_note,omitempty"`
}

// Action maps the raw name onto the known set.
func (d *Directive) Action() ActionType {
	switch ActionType(d.ActionName) {
	case ActionSayText, ActionAskQuestion, ActionFetchLatestNews, ActionFetchNewsDetails:
		return ActionType(d.ActionName)
	default:
		return ActionUnknown
	}
}

// ParseError reports an unrecoverable response. Raw carries the original
// model output for diagnostics; it never reaches the end user.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
