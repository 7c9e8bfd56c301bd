// Package prompt renders the text the model sees. Every prompt is an embedded
// template so the wording lives in one reviewable place instead of scattered
// string concatenation.
package prompt

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/errors"
)

var (
	//go:embed data/decision.md.tmpl
	decisionTmplText string
	decisionTmpl     = template.Must(template.New("decision").Funcs(funcMap()).Parse(decisionTmplText))

	//go:embed data/news_summary.md.tmpl
	newsSummaryTmplText string
	newsSummaryTmpl     = template.Must(template.New("news_summary").Funcs(funcMap()).Parse(newsSummaryTmplText))

	//go:embed data/news_details.md.tmpl
	newsDetailsTmplText string
	newsDetailsTmpl     = template.Must(template.New("news_details").Funcs(funcMap()).Parse(newsDetailsTmplText))
)

func funcMap() template.FuncMap {
	return sprig.FuncMap()
}

// ActionSpec describes one action to the model: its name, what it does, and
// the arguments it takes. The catalog rendered from these specs is the only
// thing telling the model which action names are valid.
type ActionSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
}

// DecisionValues feeds the main decision prompt. Empty fields drop their
// section entirely rather than rendering an empty heading.
type DecisionValues struct {
	Character    config.Character
	Behavior     string
	HumanDetails string
	Actions      []ActionSpec
	Conversation string
	TaskContext  string
}

// NewsSummaryValues feeds the casual tell-a-friend summary prompt.
type NewsSummaryValues struct {
	Character    config.Character
	HumanDetails string
	Items        []entity.NewsItem
}

// NewsDetailsValues feeds the focused follow-up prompt.
type NewsDetailsValues struct {
	Character config.Character
	Query     string
	Items     []entity.NewsItem
}

// Composer renders prompts for one character. It holds no mutable state and
// is safe for concurrent use.
type Composer struct {
	character config.Character
}

func NewComposer(character config.Character) *Composer {
	return &Composer{character: character}
}

// ComposeDecision renders the per-cycle decision prompt. Section order is
// fixed: identity, purpose, personality, behavior, human details, available
// actions, conversation, task context, expected response.
func (c *Composer) ComposeDecision(values DecisionValues) (string, error) {
	values.Character = c.character
	return c.render(decisionTmpl, values)
}

// ComposeNewsSummary renders the prompt that turns fetched articles into a
// short conversational message.
func (c *Composer) ComposeNewsSummary(values NewsSummaryValues) (string, error) {
	values.Character = c.character
	return c.render(newsSummaryTmpl, values)
}

// ComposeNewsDetails renders the prompt answering a follow-up question from
// a small set of already-seen articles.
func (c *Composer) ComposeNewsDetails(values NewsDetailsValues) (string, error) {
	values.Character = c.character
	return c.render(newsDetailsTmpl, values)
}

func (c *Composer) render(tmpl *template.Template, values any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, values); err != nil {
		return "", errors.Wrapf(err, "failed to render %s prompt", tmpl.Name())
	}
	return strings.TrimSpace(sb.String()) + "\n", nil
}
