package utils

import (
	"encoding/json"
	"strings"
)

// StringsToJSON encodes a list as a JSON array string, "[]" when empty.
func StringsToJSON(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// JSONToStrings decodes a JSON array string. Legacy rows that stored a
// comma-separated list are split instead.
func JSONToStrings(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" || s == "null" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		parts := strings.Split(s, ",")
		items = make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
	}
	if items == nil {
		items = []string{}
	}
	return items
}
