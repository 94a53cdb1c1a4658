package model

import (
	"errors"
	"time"
)

// Medication is one tracked drug owned by a single user.
//
// CurrentStock and DailyDosage are floats because dosages can be fractional
// (half a tablet per day). UpdatedAt doubles as the debounce anchor for
// low-stock warnings: a recent edit means the user just restocked or
// acknowledged the level, so warnings stay silent for a while after it.
type Medication struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"-"`
	Name          string     `db:"name" json:"name"`
	CurrentStock  float64    `db:"current_stock" json:"current_stock"`
	DailyDosage   float64    `db:"daily_dosage" json:"daily_dosage"`
	FrequencyNote *string    `db:"frequency_note" json:"frequency_note"`
	ExpiryDate    *time.Time `db:"expiry_date" json:"expiry_date"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	// OwnerName is the owner's display name, joined from users on list
	// queries that feed the alert engine. Not a column of medications.
	OwnerName string `db:"owner_name" json:"-"`
}

// MedicationRequest is the request body for creating or updating a medication.
type MedicationRequest struct {
	Name          string     `json:"name"`
	CurrentStock  float64    `json:"current_stock"`
	DailyDosage   float64    `json:"daily_dosage"`
	FrequencyNote *string    `json:"frequency_note"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

var (
	// ErrMedicationNotFound is returned when a medication does not exist
	// or is not owned by the caller.
	ErrMedicationNotFound = errors.New("medication not found")
)
