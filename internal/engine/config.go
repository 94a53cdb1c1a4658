package engine

import "time"

// Thresholds are the tunable knobs of the alert engine. They are passed in
// explicitly (never read from globals) so tests and deployments can override
// each one. Defaults follow the product's current values.
type Thresholds struct {
	// CriticalStockDays: at or below this many days of stock left, the
	// alert is critical and bypasses all debouncing.
	CriticalStockDays int

	// LowStockDays: below this many days left (but above critical), the
	// alert is a warning, subject to the stock silence window.
	LowStockDays int

	// ExpiryWindowDays: a medication expiring within this window produces
	// a warning; a past expiry date is always an expired alert.
	ExpiryWindowDays int

	// StockSilence: minimum time since the medication was last edited
	// before a stock warning may fire. A recent edit means the user just
	// restocked or acknowledged the level.
	StockSilence time.Duration

	// CheckupLeadDays: checkups due within this many days become alert
	// candidates.
	CheckupLeadDays int

	// CheckupSilence: minimum time between two notifications for the same
	// checkup. Strictly less than the lead time so a newly-eligible
	// checkup always gets at least one notification cycle.
	CheckupSilence time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalStockDays: 5,
		LowStockDays:      10,
		ExpiryWindowDays:  30,
		StockSilence:      24 * time.Hour,
		CheckupLeadDays:   30,
		CheckupSilence:    25 * 24 * time.Hour,
	}
}
