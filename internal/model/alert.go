package model

// AlertKind identifies what condition produced an alert.
type AlertKind string

const (
	AlertKindStock   AlertKind = "stock"
	AlertKindExpiry  AlertKind = "expiry"
	AlertKindCheckup AlertKind = "checkup"
)

// Severity classifies an alert's urgency. Ordering matters: a higher value
// wins when a medication has both a stock and an expiry condition, and
// anything above warning bypasses the debounce policy.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityCritical
	SeverityExpired
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityExpired:
		return "expired"
	default:
		return "warning"
	}
}

// Alert is the in-memory result of one evaluation. Alerts live for a single
// engine run: created by the evaluator, grouped by the aggregator, discarded
// after dispatch. Nothing is persisted.
type Alert struct {
	Kind        AlertKind
	Severity    Severity
	OwnerID     string // the patient whose record triggered the alert
	OwnerName   string // display name used in titles and caregiver copies
	SubjectName string // medication name or checkup title
	Message     string // one human-readable line, German per product wording
}
