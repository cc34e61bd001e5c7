package utils

import (
	"strings"
	"time"
	"unicode"
)

// FormatCategoryName turns a machine category key into a readable
// title: "cycle_support" -> "Cycle Support".
func FormatCategoryName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// timestampLayouts covers the formats the backend emits: RFC3339 and
// the bare ISO form Python's isoformat() produces without a zone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders a server timestamp as a calendar date. Unparseable
// values pass through verbatim rather than being hidden.
func FormatDate(raw string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return raw
}
