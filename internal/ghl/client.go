package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"lunabridge/internal/bridge"
	"lunabridge/internal/metrics"
)

// APIError is a non-2xx response from the GHL API, carrying the upstream
// status and the parsed response body. A body that is not valid JSON is kept
// under a "raw" key rather than discarded.
type APIError struct {
	StatusCode int
	Body       map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ghl request failed with status %d: %v", e.StatusCode, e.Body)
}

// Client is a thin authenticated JSON client for the GHL REST API.
type Client struct {
	baseURL    string
	token      string
	apiVersion string
	locationID string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new GHL API client.
func NewClient(baseURL, token, apiVersion, locationID string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		apiVersion: apiVersion,
		locationID: locationID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// AppointmentRequest carries everything needed to create a calendar
// appointment for an existing contact.
type AppointmentRequest struct {
	ContactID      string
	CalendarID     string
	AssignedUserID string
	Title          string
	StartTime      time.Time
	EndTime        time.Time
}

// request issues one authenticated JSON call against the GHL API and decodes
// the response body.
func (c *Client) request(ctx context.Context, operation, method, path string, body any) (map[string]any, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.CRMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CRMRequests.WithLabelValues(operation, "transport_error").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	metrics.CRMRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	parsed := map[string]any{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			parsed = map[string]any{"raw": string(respBody)}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("crm request failed",
			zap.String("operation", operation),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: parsed}
	}

	return parsed, nil
}

// UpsertContact creates or updates the CRM contact for an attendee and
// returns the contact id. Dedup by email is entirely the CRM's. Custom field
// values are keyed by "key" for standard contact.* field paths and by "id"
// for CRM-assigned custom field identifiers.
func (c *Client) UpsertContact(ctx context.Context, attendee bridge.Attendee, customFields map[string]string) (string, error) {
	fields := make([]map[string]any, 0, len(customFields))
	for key, value := range customFields {
		if strings.HasPrefix(key, "contact.") {
			fields = append(fields, map[string]any{"key": key, "value": value})
		} else {
			fields = append(fields, map[string]any{"id": key, "value": value})
		}
	}

	payload := map[string]any{
		"locationId":   c.locationID,
		"name":         attendee.Name,
		"email":        attendee.Email,
		"customFields": fields,
	}
	if attendee.Phone != "" {
		payload["phone"] = attendee.Phone
	}

	resp, err := c.request(ctx, "upsert_contact", http.MethodPost, "/contacts/upsert", payload)
	if err != nil {
		return "", err
	}

	id := contactIDFrom(resp)
	if id == "" {
		return "", fmt.Errorf("no contact id in upsert response")
	}
	c.log.Info("contact upserted", zap.String("contactId", id), zap.String("email", attendee.Email))
	return id, nil
}

// The upsert endpoint has returned three different shapes across GHL API
// versions.
func contactIDFrom(resp map[string]any) string {
	if contact, ok := resp["contact"].(map[string]any); ok {
		if id, ok := contact["id"].(string); ok && id != "" {
			return id
		}
	}
	if id, ok := resp["contactId"].(string); ok && id != "" {
		return id
	}
	if id, ok := resp["id"].(string); ok {
		return id
	}
	return ""
}

// CreateAppointment books a calendar appointment referencing an existing
// contact. Time ordering is not validated locally; the CRM rejects inverted
// ranges itself.
func (c *Client) CreateAppointment(ctx context.Context, appt AppointmentRequest) (map[string]any, error) {
	payload := map[string]any{
		"locationId":               c.locationID,
		"calendarId":               appt.CalendarID,
		"contactId":                appt.ContactID,
		"title":                    appt.Title,
		"startTime":                appt.StartTime.UTC().Format(time.RFC3339),
		"endTime":                  appt.EndTime.UTC().Format(time.RFC3339),
		"ignoreFreeSlotValidation": true,
	}
	if appt.AssignedUserID != "" {
		payload["assignedUserId"] = appt.AssignedUserID
	}

	resp, err := c.request(ctx, "create_appointment", http.MethodPost, "/calendars/events/appointments", payload)
	if err != nil {
		return nil, err
	}
	c.log.Info("appointment created",
		zap.String("contactId", appt.ContactID),
		zap.String("calendarId", appt.CalendarID))
	return resp, nil
}
