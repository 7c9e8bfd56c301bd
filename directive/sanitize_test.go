package directive_test

import (
	"testing"

	"github.com/curio-chat/curio/directive"
	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsCodeFences(t *testing.T) {
	in := "```json\n{\"action_name\":\"say_text\"}\n```"
	assert.Equal(t, `{"action_name":"say_text"}`, directive.Sanitize(in))
}

func TestSanitize_TrimsSurroundingProse(t *testing.T) {
	in := `Here is the JSON: {"action_name":"say_text"} Hope that helps!`
	assert.Equal(t, `{"action_name":"say_text"}`, directive.Sanitize(in))
}

func TestSanitize_RemovesTrailingCommas(t *testing.T) {
	in := `{"action_name":"say_text","action_args":{"message":"hi",},}`
	assert.Equal(t, `{"action_name":"say_text","action_args":{"message":"hi"}}`, directive.Sanitize(in))
}

func TestSanitize_KeepsCommaBraceInsideStringLiterals(t *testing.T) {
	in := `{"action_args":{"message":"a, b, }"},}`
	assert.Equal(t, `{"action_args":{"message":"a, b, }"}}`, directive.Sanitize(in))
}

func TestSanitize_KeepsCommaBracketAfterEscapedQuote(t *testing.T) {
	in := `{"action_args":{"message":"she said \"done,]\" twice",}}`
	assert.Equal(t, `{"action_args":{"message":"she said \"done,]\" twice"}}`, directive.Sanitize(in))
}

func TestSanitize_EscapesControlCharsInStrings(t *testing.T) {
	in := "{\"action_args\":{\"message\":\"line one\nline two\"}}"
	assert.Equal(t, `{"action_args":{"message":"line one\nline two"}}`, directive.Sanitize(in))
}

func TestSanitize_LeavesWhitespaceOutsideStringsAlone(t *testing.T) {
	in := "{\n  \"action_name\": \"say_text\"\n}"
	out := directive.Sanitize(in)
	assert.Contains(t, out, "\n")
	assert.Contains(t, out, `"say_text"`)
}

func TestSanitize_AlreadyCleanInputPassesThrough(t *testing.T) {
	in := `{"action_name":"say_text","action_args":{"message":"hi"}}`
	assert.Equal(t, in, directive.Sanitize(in))
}
