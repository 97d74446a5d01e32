package bridge

import "strings"

// Route identifies the target CRM calendar and assigned user for a booking.
// UserID is empty when the organizer has no dedicated user.
type Route struct {
	CalendarID string
	UserID     string
}

// One organizer's LunaCal profile still carries the pre-rebrand domain;
// rewrite it so the routing table only needs the canonical address. If more
// corrections show up this should move into configuration.
const (
	staleOrganizerEmail     = "jane@acme-marketing.com"
	canonicalOrganizerEmail = "jane@acme.com"
)

// Router maps organizer emails to calendar routes. The table is built once at
// startup and read concurrently without synchronization.
type Router struct {
	routes          map[string]Route
	defaultCalendar string
}

// NewRouter copies the routing table so later mutation of the source map
// cannot leak into concurrent lookups.
func NewRouter(routes map[string]Route, defaultCalendar string) *Router {
	copied := make(map[string]Route, len(routes))
	for email, route := range routes {
		copied[strings.ToLower(email)] = route
	}
	return &Router{routes: copied, defaultCalendar: defaultCalendar}
}

// Resolve returns the route for an organizer. Unmapped organizers fall back
// to the default calendar with no assigned user.
func (r *Router) Resolve(organizerEmail string) Route {
	email := strings.ToLower(strings.TrimSpace(organizerEmail))
	if email == staleOrganizerEmail {
		email = canonicalOrganizerEmail
	}
	if route, ok := r.routes[email]; ok {
		return route
	}
	return Route{CalendarID: r.defaultCalendar}
}
