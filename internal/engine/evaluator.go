package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"medilog-backend/internal/model"
)

// Evaluator turns a single record plus "now" into zero or one alert.
// It is a pure function of its inputs: running it twice on the same record
// at the same instant yields the same classification.
type Evaluator struct {
	cfg      Thresholds
	debounce *DebouncePolicy
}

func NewEvaluator(cfg Thresholds) *Evaluator {
	return &Evaluator{
		cfg:      cfg,
		debounce: NewDebouncePolicy(cfg),
	}
}

// EvaluateMedication produces at most one combined alert for a medication.
// A stock condition and an expiry condition concatenate into one message;
// the combined severity is the higher of the two (expired > critical >
// warning). A stock warning that falls inside the silence window is dropped
// while an expiry condition on the same medication still fires.
func (e *Evaluator) EvaluateMedication(med model.Medication, now time.Time) *model.Alert {
	var reasons []string
	severity := model.SeverityWarning
	kind := model.AlertKindStock

	if stockReason, stockSeverity, ok := e.evaluateStock(med, now); ok {
		if e.debounce.ShouldNotifyStock(stockSeverity, med.UpdatedAt, now) {
			reasons = append(reasons, stockReason)
			severity = maxSeverity(severity, stockSeverity)
		}
	}

	if expiryReason, expirySeverity, ok := e.evaluateExpiry(med, now); ok {
		reasons = append(reasons, expiryReason)
		severity = maxSeverity(severity, expirySeverity)
		if len(reasons) == 1 {
			kind = model.AlertKindExpiry
		}
	}

	if len(reasons) == 0 {
		return nil
	}

	return &model.Alert{
		Kind:        kind,
		Severity:    severity,
		OwnerID:     med.UserID,
		OwnerName:   med.OwnerName,
		SubjectName: med.Name,
		Message:     fmt.Sprintf("%s: %s", med.Name, strings.Join(reasons, " ")),
	}
}

func (e *Evaluator) evaluateStock(med model.Medication, now time.Time) (string, model.Severity, bool) {
	if med.DailyDosage <= 0 {
		return "", 0, false
	}

	daysLeft := int(math.Floor(med.CurrentStock / med.DailyDosage))

	switch {
	case daysLeft <= e.cfg.CriticalStockDays:
		return fmt.Sprintf("DRINGEND: Reicht nur noch %d Tage!", daysLeft), model.SeverityCritical, true
	case daysLeft < e.cfg.LowStockDays:
		return fmt.Sprintf("Niedrig: %d Tage", daysLeft), model.SeverityWarning, true
	default:
		return "", 0, false
	}
}

func (e *Evaluator) evaluateExpiry(med model.Medication, now time.Time) (string, model.Severity, bool) {
	if med.ExpiryDate == nil {
		return "", 0, false
	}

	daysToExpiry := daysUntil(*med.ExpiryDate, now)

	switch {
	case daysToExpiry < 0:
		return "ABGELAUFEN", model.SeverityExpired, true
	case daysToExpiry <= e.cfg.ExpiryWindowDays:
		return "läuft bald ab", model.SeverityWarning, true
	default:
		return "", 0, false
	}
}

// EvaluateCheckup produces a candidate alert for a checkup due within the
// lead time. The checkup debounce (ShouldNotifyCheckup) is applied by the
// coordinator, which also persists last_notified_at when the alert fires.
func (e *Evaluator) EvaluateCheckup(checkup model.Checkup, now time.Time) *model.Alert {
	if checkup.NextDueDate == nil {
		return nil
	}

	daysUntilDue := daysUntil(*checkup.NextDueDate, now)
	if daysUntilDue > e.cfg.CheckupLeadDays {
		return nil
	}

	due := checkup.NextDueDate.Format("02.01.2006")
	var timing string
	if daysUntilDue < 0 {
		timing = fmt.Sprintf("WAR FÄLLIG am %s", due)
	} else {
		timing = fmt.Sprintf("fällig am %s (in %d Tagen)", due, daysUntilDue)
	}

	return &model.Alert{
		Kind:        model.AlertKindCheckup,
		Severity:    model.SeverityWarning,
		OwnerID:     checkup.UserID,
		OwnerName:   checkup.PatientName,
		SubjectName: checkup.Title,
		Message:     fmt.Sprintf("Vorsorge %q %s!", checkup.Title, timing),
	}
}

// Debounce exposes the policy so the coordinator can apply the checkup
// silence check and tests can probe boundaries directly.
func (e *Evaluator) Debounce() *DebouncePolicy {
	return e.debounce
}

// daysUntil is the whole number of days from now until t, rounded up:
// a deadline 12 hours away still counts as 1 day out, and anything in the
// past is negative.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

func maxSeverity(a, b model.Severity) model.Severity {
	if b > a {
		return b
	}
	return a
}
