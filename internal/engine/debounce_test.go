package engine

import (
	"testing"
	"time"

	"medilog-backend/internal/model"
)

func TestDebouncePolicy_ShouldNotifyStock(t *testing.T) {
	policy := NewDebouncePolicy(DefaultThresholds())

	tests := []struct {
		name         string
		severity     model.Severity
		lastModified time.Time
		want         bool
	}{
		{"critical fires immediately", model.SeverityCritical, testNow, true},
		{"expired fires immediately", model.SeverityExpired, testNow, true},
		{"warning just modified", model.SeverityWarning, testNow, false},
		{"warning inside window", model.SeverityWarning, testNow.Add(-12 * time.Hour), false},
		{"warning exactly at window boundary", model.SeverityWarning, testNow.Add(-24 * time.Hour), false},
		{"warning past window", model.SeverityWarning, testNow.Add(-25 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.ShouldNotifyStock(tt.severity, tt.lastModified, testNow)
			if got != tt.want {
				t.Errorf("ShouldNotifyStock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDebouncePolicy_ShouldNotifyCheckup(t *testing.T) {
	policy := NewDebouncePolicy(DefaultThresholds())

	tests := []struct {
		name           string
		lastNotifiedAt *time.Time
		want           bool
	}{
		{"never notified", nil, true},
		{"notified yesterday", timePtr(daysAgo(1)), false},
		{"notified 24 days ago", timePtr(daysAgo(24)), false},
		{"notified exactly 25 days ago", timePtr(daysAgo(25)), true},
		{"notified 26 days ago", timePtr(daysAgo(26)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.ShouldNotifyCheckup(tt.lastNotifiedAt, testNow)
			if got != tt.want {
				t.Errorf("ShouldNotifyCheckup() = %v, want %v", got, tt.want)
			}
		})
	}
}
