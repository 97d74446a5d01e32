package bridge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var labelCleaner = regexp.MustCompile(`[^\w\s]`)

// normalizeLabel makes a form question comparable across re-punctuation and
// re-spacing: "What's   Your Role?" and "whats your role" normalize equally.
func normalizeLabel(label string) string {
	cleaned := labelCleaner.ReplaceAllString(label, "")
	return strings.Join(strings.Fields(strings.ToLower(cleaned)), " ")
}

// MapFields resolves configured question labels against the booking payload's
// response entries and returns normalized answers keyed by outbound field key.
// The first entry matching a configured label wins; labels with no matching
// entry are skipped. Matching is fuzzy because LunaCal form edits re-punctuate
// and re-space question labels without the mapping being updated.
func MapFields(payload map[string]any, fieldMap map[string]string) map[string]string {
	out := make(map[string]string)
	entries := responseEntries(payload)
	for label, fieldKey := range fieldMap {
		want := normalizeLabel(label)
		for _, entry := range entries {
			if normalizeLabel(entry.label) != want {
				continue
			}
			out[fieldKey] = Normalize(entry.value)
			break
		}
	}
	return out
}

type responseEntry struct {
	label string
	value string
}

// responseEntries flattens the response shapes LunaCal has emitted across
// versions: a "responses" object keyed by field slug with {label, value}
// entries, and a "userFieldsResponse" list of {label|question, value|answer}
// objects. Entries with no usable label are dropped.
func responseEntries(payload map[string]any) []responseEntry {
	var entries []responseEntry

	if m, ok := payload["responses"].(map[string]any); ok {
		for slug, v := range m {
			entry, ok := v.(map[string]any)
			if !ok {
				continue
			}
			label := stringField(entry, "label")
			if label == "" {
				label = slug
			}
			entries = append(entries, responseEntry{label: label, value: anyToString(entry["value"])})
		}
	}

	for _, key := range []string{"userFieldsResponse", "responses"} {
		list, ok := payload[key].([]any)
		if !ok {
			continue
		}
		for _, v := range list {
			entry, ok := v.(map[string]any)
			if !ok {
				continue
			}
			label := stringField(entry, "label")
			if label == "" {
				label = stringField(entry, "question")
			}
			if label == "" {
				continue
			}
			value := anyToString(entry["value"])
			if value == "" {
				value = anyToString(entry["answer"])
			}
			entries = append(entries, responseEntry{label: label, value: value})
		}
	}

	return entries
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func anyToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
