package config

import (
	"strings"

	"github.com/spf13/viper"

	"lunabridge/internal/bridge"
)

// Config holds all configuration for the application. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	// Server configuration
	Port      string
	LogLevel  string
	LogFormat string

	// GHL API configuration
	GHLAPIToken       string
	GHLLocationID     string
	GHLBaseURL        string
	GHLAPIVersion     string
	DefaultCalendarID string

	// Static routing and mapping tables, parsed from their comma-separated
	// env representations.
	CalendarRoutes map[string]bridge.Route
	CustomFieldMap map[string]string

	// Webhook security. The shared-secret check is kept behind a flag; the
	// current LunaCal setup cannot send a secret header, so it defaults off.
	WebhookSharedSecret string
	SecretCheckEnabled  bool

	// When enabled, only created/booked/rescheduled events are synced so
	// cancellations and updates cannot create duplicate appointments.
	EventFilterEnabled bool
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GHL_API_BASE_URL", "https://services.leadconnectorhq.com")
	v.SetDefault("GHL_API_VERSION", "2021-04-15")
	v.SetDefault("SECRET_CHECK_ENABLED", false)
	v.SetDefault("EVENT_FILTER_ENABLED", true)
	v.AutomaticEnv()

	return &Config{
		Port:      v.GetString("PORT"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		GHLAPIToken:       v.GetString("GHL_API_TOKEN"),
		GHLLocationID:     v.GetString("GHL_LOCATION_ID"),
		GHLBaseURL:        v.GetString("GHL_API_BASE_URL"),
		GHLAPIVersion:     v.GetString("GHL_API_VERSION"),
		DefaultCalendarID: v.GetString("GHL_CALENDAR_ID"),

		CalendarRoutes: ParseCalendarRoutes(v.GetString("CALENDAR_ROUTES")),
		CustomFieldMap: ParseFieldMap(v.GetString("CUSTOM_FIELD_MAP")),

		WebhookSharedSecret: v.GetString("WEBHOOK_SHARED_SECRET"),
		SecretCheckEnabled:  v.GetBool("SECRET_CHECK_ENABLED"),
		EventFilterEnabled:  v.GetBool("EVENT_FILTER_ENABLED"),
	}
}

// HasCRMConfig returns true if the GHL credentials are configured.
func (c *Config) HasCRMConfig() bool {
	return c.GHLAPIToken != "" && c.GHLLocationID != ""
}

// ParseCalendarRoutes parses a comma-separated list of
// "email:calendarId[:userId]" triples. Malformed entries are dropped and
// emails are lower-cased for lookup.
func ParseCalendarRoutes(raw string) map[string]bridge.Route {
	routes := make(map[string]bridge.Route)
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(parts[0]))
		calendarID := strings.TrimSpace(parts[1])
		if email == "" || calendarID == "" {
			continue
		}
		route := bridge.Route{CalendarID: calendarID}
		if len(parts) >= 3 {
			route.UserID = strings.TrimSpace(parts[2])
		}
		routes[email] = route
	}
	return routes
}

// ParseFieldMap parses a comma-separated list of "label:outboundKey" pairs
// mapping form question labels to GHL field identifiers.
func ParseFieldMap(raw string) map[string]string {
	fields := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			continue
		}
		label := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if label == "" || key == "" {
			continue
		}
		fields[label] = key
	}
	return fields
}
