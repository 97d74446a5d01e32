package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFieldsLabelStructureInsensitive(t *testing.T) {
	fieldMap := map[string]string{"What's Your Role?": "contact.role"}

	labels := []string{
		"What's Your Role?",
		"whats your role",
		"What's   Your Role",
		"WHATS YOUR ROLE!!",
	}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			payload := map[string]any{
				"responses": map[string]any{
					"role": map[string]any{"label": label, "value": "ceo/founder"},
				},
			}
			got := MapFields(payload, fieldMap)
			assert.Equal(t, map[string]string{"contact.role": "CEO / Founder"}, got)
		})
	}
}

func TestMapFieldsListShape(t *testing.T) {
	fieldMap := map[string]string{
		"What's Your Role?":     "contact.role",
		"What is your budget?":  "field_budget_123",
		"Anything else to add?": "field_notes_456",
	}
	payload := map[string]any{
		"userFieldsResponse": []any{
			map[string]any{"question": "Whats your role", "answer": "Agency Owner"},
			map[string]any{"label": "What is your budget", "value": "$1,000-$5,000"},
		},
	}

	got := MapFields(payload, fieldMap)

	assert.Equal(t, "Agency Owner", got["contact.role"])
	assert.Equal(t, "$1,000 - $5,000", got["field_budget_123"])
	// Unmatched labels are skipped, not errored.
	_, present := got["field_notes_456"]
	assert.False(t, present)
}

func TestMapFieldsNonStringValues(t *testing.T) {
	fieldMap := map[string]string{"Team size": "field_team_size"}
	payload := map[string]any{
		"responses": map[string]any{
			"teamSize": map[string]any{"label": "Team size", "value": float64(12)},
		},
	}

	got := MapFields(payload, fieldMap)
	assert.Equal(t, "12", got["field_team_size"])
}

func TestMapFieldsMalformedEntries(t *testing.T) {
	fieldMap := map[string]string{"Role": "contact.role"}
	payload := map[string]any{
		"responses": map[string]any{
			"broken": "not an object",
		},
		"userFieldsResponse": []any{
			"also not an object",
			map[string]any{"value": "no label here"},
		},
	}

	assert.Empty(t, MapFields(payload, fieldMap))
	assert.Empty(t, MapFields(map[string]any{}, fieldMap))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "whats your role", normalizeLabel("What's   Your Role?"))
	assert.Equal(t, "whats your role", normalizeLabel("whats your role"))
	assert.Equal(t, "budget", normalizeLabel("  Budget:  "))
}
