package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"medilog-backend/internal/model"
)

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, med *model.Medication) error {
	query := `
		INSERT INTO medications (id, user_id, name, current_stock, daily_dosage, frequency_note, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		med.ID, med.UserID, med.Name, med.CurrentStock, med.DailyDosage,
		med.FrequencyNote, med.ExpiryDate,
	).Scan(&med.CreatedAt, &med.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create medication: %w", err)
	}
	return nil
}

// Update rewrites the editable fields and bumps updated_at, which restarts
// the low-stock silence window.
func (r *medicationRepository) Update(ctx context.Context, med *model.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, current_stock = $2, daily_dosage = $3,
		    frequency_note = $4, expiry_date = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		med.Name, med.CurrentStock, med.DailyDosage,
		med.FrequencyNote, med.ExpiryDate,
		med.ID, med.UserID,
	)
	if err != nil {
		return fmt.Errorf("update medication: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrMedicationNotFound
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM medications WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete medication: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrMedicationNotFound
	}
	return nil
}

func (r *medicationRepository) GetByID(ctx context.Context, id, userID string) (*model.Medication, error) {
	query := `
		SELECT id, user_id, name, current_stock, daily_dosage, frequency_note, expiry_date, created_at, updated_at
		FROM medications
		WHERE id = $1 AND user_id = $2
	`
	var med model.Medication
	err := r.db.GetContext(ctx, &med, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMedicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return &med, nil
}

func (r *medicationRepository) ListByUser(ctx context.Context, userID string) ([]model.Medication, error) {
	query := `
		SELECT id, user_id, name, current_stock, daily_dosage, frequency_note, expiry_date, created_at, updated_at
		FROM medications
		WHERE user_id = $1
		ORDER BY name
	`
	meds := []model.Medication{}
	if err := r.db.SelectContext(ctx, &meds, query, userID); err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	return meds, nil
}

// ListAll is the engine's evaluation feed: every medication in the system
// with the owner's display name joined for alert titles.
func (r *medicationRepository) ListAll(ctx context.Context) ([]model.Medication, error) {
	query := `
		SELECT m.id, m.user_id, m.name, m.current_stock, m.daily_dosage,
		       m.frequency_note, m.expiry_date, m.created_at, m.updated_at,
		       u.full_name AS owner_name
		FROM medications m
		JOIN users u ON u.id = m.user_id
	`
	meds := []model.Medication{}
	if err := r.db.SelectContext(ctx, &meds, query); err != nil {
		return nil, fmt.Errorf("list all medications: %w", err)
	}
	return meds, nil
}

func (r *medicationRepository) DeductStock(ctx context.Context, userID string, days int) error {
	query := `
		UPDATE medications
		SET current_stock = GREATEST(0, current_stock - daily_dosage * $1),
		    updated_at = NOW()
		WHERE user_id = $2 AND daily_dosage > 0
	`
	if _, err := r.db.ExecContext(ctx, query, days, userID); err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	return nil
}
