package bridge

// Attendee is the best-effort contact triple extracted from a booking payload.
// Email and Phone are empty when no source provided them.
type Attendee struct {
	Name  string
	Email string
	Phone string
}

// ExtractAttendee pulls a name/email/phone triple out of a loosely-structured
// booking payload. Each field walks an ordered fallback chain and takes the
// first defined value; malformed sources are skipped, so extraction never
// fails. Name defaults to "Unknown" when every source is absent.
func ExtractAttendee(payload map[string]any) Attendee {
	att := Attendee{Name: "Unknown"}
	if name := attendeeField(payload, "name"); name != "" {
		att.Name = name
	}
	att.Email = attendeeField(payload, "email")
	att.Phone = attendeeField(payload, "phone")
	return att
}

// Fallback order: first attendees entry, structured response value, invitee
// object, bare top-level field.
func attendeeField(payload map[string]any, field string) string {
	if list, ok := payload["attendees"].([]any); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]any); ok {
			if v := stringField(first, field); v != "" {
				return v
			}
		}
	}
	if responses, ok := payload["responses"].(map[string]any); ok {
		if entry, ok := responses[field].(map[string]any); ok {
			if v := anyToString(entry["value"]); v != "" {
				return v
			}
		}
	}
	if invitee, ok := payload["invitee"].(map[string]any); ok {
		if v := stringField(invitee, field); v != "" {
			return v
		}
	}
	return stringField(payload, field)
}
