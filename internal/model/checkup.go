package model

import (
	"errors"
	"time"
)

// Frequency units for recurring checkups.
const (
	FrequencyMonths = "months"
	FrequencyYears  = "years"
)

// Checkup is a reminder for a periodic appointment (dentist, skin screening,
// ...). It is owned by a user and optionally scoped to a patient the owner
// cares for; PatientID == nil means the checkup concerns the owner.
//
// LastNotifiedAt is the only field the alert engine writes: it is set to the
// time an alert for this checkup fired, and silences further alerts for the
// checkup silence window.
type Checkup struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"-"`
	PatientID      *string    `db:"patient_id" json:"patient_id"`
	Title          string     `db:"title" json:"title"`
	FrequencyValue int        `db:"frequency_value" json:"frequency_value"`
	FrequencyUnit  string     `db:"frequency_unit" json:"frequency_unit"` // "months" or "years"
	LastVisitDate  *time.Time `db:"last_visit_date" json:"last_visit_date"`
	NextDueDate    *time.Time `db:"next_due_date" json:"next_due_date"`
	LastNotifiedAt *time.Time `db:"last_notified_at" json:"last_notified_at"`
	Notes          *string    `db:"notes" json:"notes"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`

	// PatientName is the display name of the person the checkup is for
	// (the patient if scoped, otherwise the owner). Joined on list queries.
	PatientName string `db:"patient_name" json:"-"`
}

// CheckupRequest is the request body for creating a checkup.
type CheckupRequest struct {
	Title          string     `json:"title"`
	FrequencyValue int        `json:"frequency_value"`
	FrequencyUnit  string     `json:"frequency_unit"`
	LastVisitDate  *time.Time `json:"last_visit_date"`
	PatientID      *string    `json:"patient_id"`
	Notes          *string    `json:"notes"`
}

// CompleteCheckupRequest records an actual visit so the next due date can be
// recomputed from it.
type CompleteCheckupRequest struct {
	ActualDate time.Time `json:"actual_date"`
}

var (
	// ErrCheckupNotFound is returned when a checkup does not exist or is
	// not owned by the caller.
	ErrCheckupNotFound = errors.New("checkup not found")

	// ErrInvalidFrequency is returned for a frequency unit other than
	// months/years or a non-positive frequency value.
	ErrInvalidFrequency = errors.New("invalid checkup frequency")
)
