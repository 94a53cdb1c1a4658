package repository

import (
	"context"
	"time"

	"medilog-backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, med *model.Medication) error
	Update(ctx context.Context, med *model.Medication) error
	Delete(ctx context.Context, id, userID string) error
	GetByID(ctx context.Context, id, userID string) (*model.Medication, error)
	ListByUser(ctx context.Context, userID string) ([]model.Medication, error)
	// ListAll returns every medication with the owner's display name joined,
	// for the alert engine's evaluation pass.
	ListAll(ctx context.Context) ([]model.Medication, error)
	// DeductStock subtracts amount from every medication of the user,
	// flooring at zero. Used by the weekly ration action.
	DeductStock(ctx context.Context, userID string, days int) error
}

type CheckupRepository interface {
	Create(ctx context.Context, checkup *model.Checkup) error
	Update(ctx context.Context, checkup *model.Checkup) error
	Delete(ctx context.Context, id, userID string) error
	GetByID(ctx context.Context, id, userID string) (*model.Checkup, error)
	ListByUser(ctx context.Context, userID string) ([]model.Checkup, error)
	// ListWithDueDate returns every checkup whose next_due_date is set,
	// with the subject's display name joined, for the alert engine.
	ListWithDueDate(ctx context.Context) ([]model.Checkup, error)
	// UpdateNotifiedAt records that an alert fired for this checkup.
	UpdateNotifiedAt(ctx context.Context, id string, notifiedAt time.Time) error
}

type CareRepository interface {
	Create(ctx context.Context, rel *model.CareRelationship) error
	GetByID(ctx context.Context, id string) (*model.CareRelationship, error)
	Exists(ctx context.Context, patientID, caregiverID string) (bool, error)
	Accept(ctx context.Context, id, caregiverID string) error
	Delete(ctx context.Context, id string) error
	ListCaregivers(ctx context.Context, patientID string) ([]model.CaregiverSummary, error)
	ListPendingInvites(ctx context.Context, caregiverID string) ([]model.PendingInvite, error)
	// ListAcceptedCaregiverIDs feeds the alert engine's recipient resolver.
	ListAcceptedCaregiverIDs(ctx context.Context, patientID string) ([]string, error)
}

type SubscriptionRepository interface {
	// Upsert registers a device, reassigning the endpoint if it already
	// exists (device changed accounts).
	Upsert(ctx context.Context, sub *model.PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]model.PushSubscription, error)
	Delete(ctx context.Context, id string) error
	DeleteByEndpoint(ctx context.Context, userID, endpoint string) error
}
