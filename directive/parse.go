package directive

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/curio-chat/curio/errors"
)

// wireDirective tolerates the model emitting non-string argument values
// (numbers, booleans); they are coerced to strings after unmarshalling.
type wireDirective struct {
	ActionName     string         `json:"action_name"`
	ActionArgs     map[string]any `json:"action_args"`
	FactUpdates    map[string]any `json:"fact_updates"`
	BehaviorUpdate string         `json:"behavior_update"`
	DebugNote      string         `json:"debug_note"`
}

// Parse sanitizes raw model output and decodes it into a Directive. On
// failure it returns a *ParseError carrying the original text; the caller
// must abort the cycle without dispatching. A parsed object with no
// action_name is NOT an error: it yields a directive whose Action() is
// ActionUnknown, which the dispatcher reports and ignores.
func Parse(raw string) (*Directive, error) {
	cleaned := Sanitize(raw)

	var wire wireDirective
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, &ParseError{Raw: raw, Err: errors.Wrapf(errors.ErrParse, "%v", err)}
	}

	return &Directive{
		ActionName:     wire.ActionName,
		ActionArgs:     coerceStringMap(wire.ActionArgs),
		FactUpdates:    coerceStringMap(wire.FactUpdates),
		BehaviorUpdate: wire.BehaviorUpdate,
		DebugNote:      wire.DebugNote,
	}, nil
}

func coerceStringMap(in map[string]any) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = coerceString(v)
	}
	return out
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
