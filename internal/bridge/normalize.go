package bridge

import "strings"

// The CRM's picklist fields are exact-match and case-sensitive, so every known
// variant of a dropdown answer has to collapse to one canonical spelling or
// the write silently selects nothing. Keys are trimmed and lower-cased.
var roleOptions = map[string]string{
	"ceo/founder":             "CEO / Founder",
	"ceo / founder":           "CEO / Founder",
	"founder":                 "CEO / Founder",
	"owner":                   "CEO / Founder",
	"marketing manager":       "Marketing Manager",
	"head of marketing":       "Marketing Manager",
	"agency owner":            "Agency Owner",
	"agency":                  "Agency Owner",
	"freelancer":              "Freelancer / Consultant",
	"consultant":              "Freelancer / Consultant",
	"freelancer/consultant":   "Freelancer / Consultant",
	"freelancer / consultant": "Freelancer / Consultant",
	"other":                   "Other",
}

var budgetOptions = map[string]string{
	"under $1,000":      "Under $1,000",
	"under $1000":       "Under $1,000",
	"under 1000":        "Under $1,000",
	"less than $1,000":  "Under $1,000",
	"$1,000 - $5,000":   "$1,000 - $5,000",
	"$1,000-$5,000":     "$1,000 - $5,000",
	"$1000 - $5000":     "$1,000 - $5,000",
	"1000-5000":         "$1,000 - $5,000",
	"$5,000 - $10,000":  "$5,000 - $10,000",
	"$5,000-$10,000":    "$5,000 - $10,000",
	"$5000 - $10000":    "$5,000 - $10,000",
	"5000-10000":        "$5,000 - $10,000",
	"$10,000+":          "$10,000+",
	"10000+":            "$10,000+",
	"over $10,000":      "$10,000+",
	"more than $10,000": "$10,000+",
}

// Normalize collapses a free-text dropdown answer to its canonical spelling.
// Unrecognized values pass through trimmed but otherwise untouched.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	key := strings.ToLower(trimmed)
	if canonical, ok := roleOptions[key]; ok {
		return canonical
	}
	if canonical, ok := budgetOptions[key]; ok {
		return canonical
	}
	return trimmed
}
