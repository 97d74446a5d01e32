package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunabridge/internal/bridge"
)

func TestParseCalendarRoutes(t *testing.T) {
	routes := ParseCalendarRoutes("jane@acme.com:cal_1:user_7, Bob@Beta.io:cal_2 ,broken,:cal_x,empty@cal.com:")

	require.Len(t, routes, 2)
	assert.Equal(t, bridge.Route{CalendarID: "cal_1", UserID: "user_7"}, routes["jane@acme.com"])
	// Email keys are lower-cased, userId is optional.
	assert.Equal(t, bridge.Route{CalendarID: "cal_2"}, routes["bob@beta.io"])
}

func TestParseCalendarRoutesEmpty(t *testing.T) {
	assert.Empty(t, ParseCalendarRoutes(""))
	assert.Empty(t, ParseCalendarRoutes(" , ,"))
}

func TestParseFieldMap(t *testing.T) {
	fields := ParseFieldMap("What's Your Role?:contact.role, Budget:field_abc123,nocolon, :field_x")

	require.Len(t, fields, 2)
	assert.Equal(t, "contact.role", fields["What's Your Role?"])
	assert.Equal(t, "field_abc123", fields["Budget"])
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://services.leadconnectorhq.com", cfg.GHLBaseURL)
	assert.Equal(t, "2021-04-15", cfg.GHLAPIVersion)
	assert.False(t, cfg.SecretCheckEnabled)
	assert.True(t, cfg.EventFilterEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GHL_API_TOKEN", "pit-token")
	t.Setenv("GHL_LOCATION_ID", "loc_1")
	t.Setenv("CALENDAR_ROUTES", "jane@acme.com:cal_1:user_7")
	t.Setenv("CUSTOM_FIELD_MAP", "Budget:field_abc123")
	t.Setenv("EVENT_FILTER_ENABLED", "false")

	cfg := Load()

	assert.True(t, cfg.HasCRMConfig())
	assert.Equal(t, bridge.Route{CalendarID: "cal_1", UserID: "user_7"}, cfg.CalendarRoutes["jane@acme.com"])
	assert.Equal(t, "field_abc123", cfg.CustomFieldMap["Budget"])
	assert.False(t, cfg.EventFilterEnabled)
}

func TestHasCRMConfig(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasCRMConfig())

	cfg.GHLAPIToken = "token"
	assert.False(t, cfg.HasCRMConfig())

	cfg.GHLLocationID = "loc_1"
	assert.True(t, cfg.HasCRMConfig())
}
