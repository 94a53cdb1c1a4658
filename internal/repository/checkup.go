package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"medilog-backend/internal/model"
)

type checkupRepository struct {
	db *sqlx.DB
}

func NewCheckupRepository(db *sqlx.DB) CheckupRepository {
	return &checkupRepository{db: db}
}

func (r *checkupRepository) Create(ctx context.Context, checkup *model.Checkup) error {
	query := `
		INSERT INTO recurring_checkups
			(id, user_id, patient_id, title, frequency_value, frequency_unit,
			 last_visit_date, next_due_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		checkup.ID, checkup.UserID, checkup.PatientID, checkup.Title,
		checkup.FrequencyValue, checkup.FrequencyUnit,
		checkup.LastVisitDate, checkup.NextDueDate, checkup.Notes,
	).Scan(&checkup.CreatedAt)
	if err != nil {
		return fmt.Errorf("create checkup: %w", err)
	}
	return nil
}

func (r *checkupRepository) Update(ctx context.Context, checkup *model.Checkup) error {
	query := `
		UPDATE recurring_checkups
		SET title = $1, frequency_value = $2, frequency_unit = $3,
		    last_visit_date = $4, next_due_date = $5, notes = $6
		WHERE id = $7 AND user_id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		checkup.Title, checkup.FrequencyValue, checkup.FrequencyUnit,
		checkup.LastVisitDate, checkup.NextDueDate, checkup.Notes,
		checkup.ID, checkup.UserID,
	)
	if err != nil {
		return fmt.Errorf("update checkup: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrCheckupNotFound
	}
	return nil
}

func (r *checkupRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM recurring_checkups WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete checkup: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrCheckupNotFound
	}
	return nil
}

func (r *checkupRepository) GetByID(ctx context.Context, id, userID string) (*model.Checkup, error) {
	query := `
		SELECT id, user_id, patient_id, title, frequency_value, frequency_unit,
		       last_visit_date, next_due_date, last_notified_at, notes, created_at
		FROM recurring_checkups
		WHERE id = $1 AND user_id = $2
	`
	var checkup model.Checkup
	err := r.db.GetContext(ctx, &checkup, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCheckupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get checkup: %w", err)
	}
	return &checkup, nil
}

func (r *checkupRepository) ListByUser(ctx context.Context, userID string) ([]model.Checkup, error) {
	query := `
		SELECT id, user_id, patient_id, title, frequency_value, frequency_unit,
		       last_visit_date, next_due_date, last_notified_at, notes, created_at
		FROM recurring_checkups
		WHERE user_id = $1
		ORDER BY next_due_date ASC NULLS LAST
	`
	checkups := []model.Checkup{}
	if err := r.db.SelectContext(ctx, &checkups, query, userID); err != nil {
		return nil, fmt.Errorf("list checkups: %w", err)
	}
	return checkups, nil
}

// ListWithDueDate is the engine's evaluation feed. The subject name falls
// back to the owner when the checkup is not scoped to another patient.
func (r *checkupRepository) ListWithDueDate(ctx context.Context) ([]model.Checkup, error) {
	query := `
		SELECT c.id, c.user_id, c.patient_id, c.title, c.frequency_value, c.frequency_unit,
		       c.last_visit_date, c.next_due_date, c.last_notified_at, c.notes, c.created_at,
		       COALESCE(p.full_name, o.full_name) AS patient_name
		FROM recurring_checkups c
		JOIN users o ON o.id = c.user_id
		LEFT JOIN users p ON p.id = c.patient_id
		WHERE c.next_due_date IS NOT NULL
	`
	checkups := []model.Checkup{}
	if err := r.db.SelectContext(ctx, &checkups, query); err != nil {
		return nil, fmt.Errorf("list checkups with due date: %w", err)
	}
	return checkups, nil
}

func (r *checkupRepository) UpdateNotifiedAt(ctx context.Context, id string, notifiedAt time.Time) error {
	query := `UPDATE recurring_checkups SET last_notified_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, notifiedAt, id); err != nil {
		return fmt.Errorf("update checkup notified_at: %w", err)
	}
	return nil
}
