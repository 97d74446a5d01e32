package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lunabridge/internal/bridge"
	"lunabridge/internal/ghl"
	"lunabridge/internal/metrics"
)

// Only these booking lifecycle events create CRM records; cancellations and
// reminder events passing through would duplicate appointments.
var syncTriggers = []string{"created", "booked", "rescheduled"}

// handleWebhook is the single entry point for LunaCal booking events:
// classify, extract, validate, then upsert the contact and create the
// appointment in strict sequence.
func (s *Server) handleWebhook(c *gin.Context) {
	if !s.cfg.HasCRMConfig() {
		metrics.WebhookEvents.WithLabelValues("config_error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "CRM credentials are not configured"})
		return
	}

	if s.cfg.SecretCheckEnabled && !s.secretMatches(c) {
		metrics.WebhookEvents.WithLabelValues("unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "Invalid webhook secret"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.WebhookEvents.WithLabelValues("bad_json").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid JSON payload"})
		return
	}

	trigger := triggerEvent(body)
	if strings.Contains(strings.ToLower(trigger), "ping") {
		metrics.WebhookEvents.WithLabelValues("ping").Inc()
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "pong"})
		return
	}

	if s.cfg.EventFilterEnabled && !shouldSync(trigger) {
		metrics.WebhookEvents.WithLabelValues("skipped").Inc()
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "no action taken for event " + trigger})
		return
	}

	// Older LunaCal versions post the booking fields at the top level
	// instead of under "payload".
	payload := body
	if p, ok := body["payload"].(map[string]any); ok {
		payload = p
	}

	attendee := bridge.ExtractAttendee(payload)
	customFields := bridge.MapFields(payload, s.cfg.CustomFieldMap)
	startTime, startOK := bridge.ParseEventTime(payload["startTime"])
	endTime, endOK := bridge.ParseEventTime(payload["endTime"])
	route := s.router.Resolve(organizerEmail(payload))

	if attendee.Email == "" || !startOK || !endOK || route.CalendarID == "" {
		metrics.WebhookEvents.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"message": "Missing required booking fields",
			"debug": gin.H{
				"email":      attendee.Email,
				"startTime":  payload["startTime"],
				"endTime":    payload["endTime"],
				"calendarId": route.CalendarID,
			},
		})
		return
	}

	ctx := c.Request.Context()

	contactID, err := s.crm.UpsertContact(ctx, attendee, customFields)
	if err != nil {
		s.log.Error("contact upsert failed",
			zap.String("requestId", c.GetString("requestID")),
			zap.String("email", attendee.Email),
			zap.Error(err))
		metrics.WebhookEvents.WithLabelValues("upsert_failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Contact upsert failed: " + err.Error()})
		return
	}

	appt, err := s.crm.CreateAppointment(ctx, ghl.AppointmentRequest{
		ContactID:      contactID,
		CalendarID:     route.CalendarID,
		AssignedUserID: route.UserID,
		Title:          appointmentTitle(payload, attendee),
		StartTime:      startTime,
		EndTime:        endTime,
	})
	if err != nil {
		s.log.Error("appointment creation failed",
			zap.String("requestId", c.GetString("requestID")),
			zap.String("contactId", contactID),
			zap.Error(err))
		metrics.WebhookEvents.WithLabelValues("appointment_failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":        false,
			"message":   "Appointment creation failed: " + err.Error(),
			"contactId": contactID,
		})
		return
	}

	metrics.WebhookEvents.WithLabelValues("synced").Inc()
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"message":       "Booking synced",
		"contactId":     contactID,
		"appointmentId": appointmentID(appt),
	})
}

func (s *Server) secretMatches(c *gin.Context) bool {
	secret := c.GetHeader("X-Webhook-Secret")
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.WebhookSharedSecret)) == 1
}

// The trigger key has moved between LunaCal versions.
func triggerEvent(body map[string]any) string {
	for _, key := range []string{"triggerEvent", "event", "type"} {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func shouldSync(trigger string) bool {
	lower := strings.ToLower(trigger)
	for _, t := range syncTriggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func organizerEmail(payload map[string]any) string {
	if organizer, ok := payload["organizer"].(map[string]any); ok {
		if email, ok := organizer["email"].(string); ok && email != "" {
			return email
		}
	}
	email, _ := payload["organizerEmail"].(string)
	return email
}

func appointmentTitle(payload map[string]any, attendee bridge.Attendee) string {
	if title, ok := payload["title"].(string); ok && title != "" {
		return title
	}
	return "Booking with " + attendee.Name
}

func appointmentID(appt map[string]any) string {
	if id, ok := appt["id"].(string); ok && id != "" {
		return id
	}
	id, _ := appt["appointmentId"].(string)
	return id
}
