package model

import (
	"errors"
	"time"
)

// Care relationship statuses. Only accepted relationships influence
// notification fan-out.
const (
	CareStatusPending  = "pending"
	CareStatusAccepted = "accepted"
)

// CareRelationship is a directed edge patient -> caregiver. The caregiver
// sees the patient's data and receives copies of the patient's alerts once
// the relationship is accepted.
type CareRelationship struct {
	ID          string    `db:"id" json:"id"`
	PatientID   string    `db:"patient_id" json:"patient_id"`
	CaregiverID string    `db:"caregiver_id" json:"caregiver_id"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CaregiverSummary is a caregiver entry as shown to the patient.
type CaregiverSummary struct {
	RelationshipID string `db:"id" json:"id"`
	CaregiverID    string `db:"caregiver_id" json:"caregiver_id"`
	Status         string `db:"status" json:"status"`
	Email          string `db:"email" json:"email"`
	FullName       string `db:"full_name" json:"full_name"`
}

// PendingInvite is an open care request as shown to the invited caregiver.
type PendingInvite struct {
	RelationshipID string    `db:"id" json:"id"`
	PatientName    string    `db:"patient_name" json:"patient_name"`
	PatientEmail   string    `db:"patient_email" json:"patient_email"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// InviteCaregiverRequest is the request body for inviting a caregiver by email.
type InviteCaregiverRequest struct {
	Email string `json:"email"`
}

// RespondInviteRequest accepts or declines a pending care request.
type RespondInviteRequest struct {
	Accept bool `json:"accept"`
}

var (
	// ErrRelationshipNotFound is returned when a care relationship does not
	// exist or does not involve the caller in the required role.
	ErrRelationshipNotFound = errors.New("care relationship not found")

	// ErrSelfInvite is returned when a user tries to invite themselves.
	ErrSelfInvite = errors.New("cannot invite yourself")

	// ErrInviteRateLimited is returned when a user exceeds the invite quota.
	ErrInviteRateLimited = errors.New("too many invite attempts")
)
