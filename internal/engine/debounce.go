package engine

import (
	"time"

	"medilog-backend/internal/model"
)

// DebouncePolicy decides whether an alert condition that held on a previous
// run should notify again on this one. Runs happen several times a day, so
// without debouncing every non-urgent condition would push on every run.
type DebouncePolicy struct {
	cfg Thresholds
}

func NewDebouncePolicy(cfg Thresholds) *DebouncePolicy {
	return &DebouncePolicy{cfg: cfg}
}

// ShouldNotifyStock reports whether a stock alert of the given severity may
// fire. Critical and expired severities always notify; warnings stay silent
// until the medication has gone unedited for the stock silence window.
func (p *DebouncePolicy) ShouldNotifyStock(severity model.Severity, lastModified, now time.Time) bool {
	if severity != model.SeverityWarning {
		return true
	}
	return now.Sub(lastModified) > p.cfg.StockSilence
}

// ShouldNotifyCheckup reports whether a due checkup may notify. A checkup
// that never notified always may; afterwards it re-notifies only once the
// checkup silence window has fully elapsed.
func (p *DebouncePolicy) ShouldNotifyCheckup(lastNotifiedAt *time.Time, now time.Time) bool {
	if lastNotifiedAt == nil {
		return true
	}
	return now.Sub(*lastNotifiedAt) >= p.cfg.CheckupSilence
}
