package order

// Urgency is the display tier derived from how long an order has been waiting.
// It is computed at read time and never persisted.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyWarning
	UrgencyUrgent
)

func (u Urgency) String() string {
	switch u {
	case UrgencyWarning:
		return "warning"
	case UrgencyUrgent:
		return "urgent"
	default:
		return "normal"
	}
}
