package flow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxPropertyLength is the longest cleaned value stored verbatim; longer
	// values are cut at this length and marked with TruncationMarker.
	MaxPropertyLength = 500
	// TruncationMarker is appended to values cut at MaxPropertyLength.
	TruncationMarker = "...[TRUNCATED]"
	// SensitiveMask replaces the value of any property whose name looks
	// secret-bearing, regardless of content.
	SensitiveMask = "***SENSITIVE***"
)

// sensitiveNameParts are matched case-insensitively against property names.
// A hit masks the whole value. Kept as one table so the policy is auditable
// in one place.
var sensitiveNameParts = []string{
	"password",
	"secret",
	"key",
	"credential",
	"token",
}

// CleanProperties sanitizes a raw property mapping for single-line tabular
// export. Values are stringified, stripped of control characters, whitespace
// collapsed, truncated past MaxPropertyLength, and masked entirely when the
// property name matches the sensitive list. Property names pass through
// verbatim.
func CleanProperties(raw map[string]any) map[string]string {
	cleaned := make(map[string]string, len(raw))
	for name, value := range raw {
		if isSensitiveName(name) {
			cleaned[name] = SensitiveMask
			continue
		}
		text := collapseWhitespace(stringify(value))
		if runes := []rune(text); len(runes) > MaxPropertyLength {
			text = string(runes[:MaxPropertyLength]) + TruncationMarker
		}
		cleaned[name] = text
	}
	return cleaned
}

func isSensitiveName(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// stringify renders any JSON value as a string. Null becomes empty, scalars
// use their plain representation, composite values keep their compact JSON
// form so nothing is lost in the flat table.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// collapseWhitespace makes a value single-line safe: tab, CR and LF become
// spaces, remaining C0 control characters are dropped, and any run of spaces
// collapses to one. Leading and trailing whitespace is trimmed.
func collapseWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		switch {
		case r == '\t' || r == '\r' || r == '\n' || r == ' ':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case r < 0x20 || r == 0x7f:
			// other control characters are removed outright
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
