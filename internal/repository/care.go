package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"medilog-backend/internal/model"
)

type careRepository struct {
	db *sqlx.DB
}

func NewCareRepository(db *sqlx.DB) CareRepository {
	return &careRepository{db: db}
}

func (r *careRepository) Create(ctx context.Context, rel *model.CareRelationship) error {
	query := `
		INSERT INTO care_relationships (id, patient_id, caregiver_id, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		rel.ID, rel.PatientID, rel.CaregiverID, rel.Status,
	).Scan(&rel.CreatedAt)
	if err != nil {
		return fmt.Errorf("create care relationship: %w", err)
	}
	return nil
}

func (r *careRepository) GetByID(ctx context.Context, id string) (*model.CareRelationship, error) {
	query := `
		SELECT id, patient_id, caregiver_id, status, created_at
		FROM care_relationships
		WHERE id = $1
	`
	var rel model.CareRelationship
	err := r.db.GetContext(ctx, &rel, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRelationshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get care relationship: %w", err)
	}
	return &rel, nil
}

func (r *careRepository) Exists(ctx context.Context, patientID, caregiverID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM care_relationships WHERE patient_id = $1 AND caregiver_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, patientID, caregiverID); err != nil {
		return false, fmt.Errorf("check care relationship exists: %w", err)
	}
	return exists, nil
}

// Accept flips a pending invite to accepted. The caregiver_id guard ensures
// only the invited user can accept.
func (r *careRepository) Accept(ctx context.Context, id, caregiverID string) error {
	query := `
		UPDATE care_relationships
		SET status = 'accepted'
		WHERE id = $1 AND caregiver_id = $2 AND status = 'pending'
	`
	res, err := r.db.ExecContext(ctx, query, id, caregiverID)
	if err != nil {
		return fmt.Errorf("accept care relationship: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrRelationshipNotFound
	}
	return nil
}

func (r *careRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM care_relationships WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete care relationship: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrRelationshipNotFound
	}
	return nil
}

func (r *careRepository) ListCaregivers(ctx context.Context, patientID string) ([]model.CaregiverSummary, error) {
	query := `
		SELECT r.id, r.caregiver_id, r.status, u.email, u.full_name
		FROM care_relationships r
		JOIN users u ON u.id = r.caregiver_id
		WHERE r.patient_id = $1
		ORDER BY r.created_at
	`
	caregivers := []model.CaregiverSummary{}
	if err := r.db.SelectContext(ctx, &caregivers, query, patientID); err != nil {
		return nil, fmt.Errorf("list caregivers: %w", err)
	}
	return caregivers, nil
}

func (r *careRepository) ListPendingInvites(ctx context.Context, caregiverID string) ([]model.PendingInvite, error) {
	query := `
		SELECT r.id, u.full_name AS patient_name, u.email AS patient_email, r.created_at
		FROM care_relationships r
		JOIN users u ON u.id = r.patient_id
		WHERE r.caregiver_id = $1 AND r.status = 'pending'
		ORDER BY r.created_at DESC
	`
	invites := []model.PendingInvite{}
	if err := r.db.SelectContext(ctx, &invites, query, caregiverID); err != nil {
		return nil, fmt.Errorf("list pending invites: %w", err)
	}
	return invites, nil
}

func (r *careRepository) ListAcceptedCaregiverIDs(ctx context.Context, patientID string) ([]string, error) {
	query := `
		SELECT caregiver_id
		FROM care_relationships
		WHERE patient_id = $1 AND status = 'accepted'
	`
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, patientID); err != nil {
		return nil, fmt.Errorf("list accepted caregivers: %w", err)
	}
	return ids, nil
}
