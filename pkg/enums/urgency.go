package enums

import "strings"

// Urgency describes how quickly a delivery is expected.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// ParseUrgency normalizes free-form input, defaulting to normal.
func ParseUrgency(value string) Urgency {
	if strings.EqualFold(strings.TrimSpace(value), string(UrgencyUrgent)) {
		return UrgencyUrgent
	}
	return UrgencyNormal
}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent:
		return true
	}
	return false
}

func (u Urgency) IsUrgent() bool {
	return u == UrgencyUrgent
}
