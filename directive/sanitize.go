package directive

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// repairStep is one named transformation in the sanitizing pipeline. Order
// matters: fences come off before the object is cut out, commas and control
// characters are fixed on the extracted object.
type repairStep struct {
	name  string
	apply func(string) string
}

var pipeline = []repairStep{
	{"strip_code_fences", stripCodeFences},
	{"trim_to_object", trimToObject},
	{"strip_chatter", stripChatter},
	{"remove_trailing_commas", removeTrailingCommas},
	{"escape_control_chars", escapeControlChars},
}

// Sanitize runs the full repair pipeline over raw model output.
func Sanitize(raw string) string {
	s := raw
	for _, step := range pipeline {
		s = step.apply(s)
	}
	return s
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

func stripCodeFences(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); len(m) >= 2 {
		return m[1]
	}
	return strings.ReplaceAll(s, "```", "")
}

// trimToObject cuts away prose before the first '{' and after the last '}'.
func trimToObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

var chatterPrefixes = []string{
	"json",
	"here is the json:",
	"here is the response:",
	"response:",
	"sure,",
	"sure!",
}

func stripChatter(s string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, prefix := range chatterPrefixes {
		if strings.HasPrefix(lower, prefix) {
			trimmed = strings.TrimSpace(trimmed[len(prefix):])
			lower = strings.ToLower(trimmed)
		}
	}
	return trimmed
}

// removeTrailingCommas drops a comma whose next non-space character closes an
// object or array. String literals are scanned over, so a ",}" inside message
// text survives.
func removeTrailingCommas(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	runes := []rune(s)
	inString := false
	escaped := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			sb.WriteRune(r)
			continue
		}

		if r == '"' {
			inString = true
			sb.WriteRune(r)
			continue
		}

		if r == ',' {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// escapeControlChars escapes raw control characters that appear inside string
// literals, which the model produces when it writes multi-line message text.
// Characters outside string literals are left alone.
func escapeControlChars(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	inString := false
	escaped := false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
				sb.WriteRune(r)
			case r == '\\':
				escaped = true
				sb.WriteRune(r)
			case r == '"':
				inString = false
				sb.WriteRune(r)
			case r == '\n':
				sb.WriteString(`\n`)
			case r == '\t':
				sb.WriteString(`\t`)
			case r == '\r':
				sb.WriteString(`\r`)
			case r < 0x20:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				sb.WriteRune(r)
			}
			continue
		}

		if r == '"' {
			inString = true
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
