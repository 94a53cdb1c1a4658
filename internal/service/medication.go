package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"medilog-backend/internal/model"
	"medilog-backend/internal/repository"
)

// deductDays is the number of daily dosages subtracted by the weekly
// ration action.
const deductDays = 7

// MedicationService handles business logic for the medication inventory.
type MedicationService struct {
	repo repository.MedicationRepository
}

func NewMedicationService(repo repository.MedicationRepository) *MedicationService {
	return &MedicationService{repo: repo}
}

// Create adds a medication to the caller's inventory.
func (s *MedicationService) Create(ctx context.Context, userID string, req *model.MedicationRequest) (*model.Medication, error) {
	if err := validateMedicationRequest(req); err != nil {
		return nil, err
	}

	med := &model.Medication{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		CurrentStock:  req.CurrentStock,
		DailyDosage:   req.DailyDosage,
		FrequencyNote: req.FrequencyNote,
		ExpiryDate:    req.ExpiryDate,
	}

	if err := s.repo.Create(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return med, nil
}

// Update replaces a medication's fields. The write bumps updated_at, which
// restarts the low-stock warning silence window.
func (s *MedicationService) Update(ctx context.Context, id, userID string, req *model.MedicationRequest) (*model.Medication, error) {
	if err := validateMedicationRequest(req); err != nil {
		return nil, err
	}

	med, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	med.Name = strings.TrimSpace(req.Name)
	med.CurrentStock = req.CurrentStock
	med.DailyDosage = req.DailyDosage
	med.FrequencyNote = req.FrequencyNote
	med.ExpiryDate = req.ExpiryDate

	if err := s.repo.Update(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return med, nil
}

// Delete removes a medication from the caller's inventory.
func (s *MedicationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// GetByID fetches one medication owned by the caller.
func (s *MedicationService) GetByID(ctx context.Context, id, userID string) (*model.Medication, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// ListByUser returns the caller's inventory.
func (s *MedicationService) ListByUser(ctx context.Context, userID string) ([]model.Medication, error) {
	return s.repo.ListByUser(ctx, userID)
}

// DeductWeek subtracts seven daily dosages from every medication of the
// caller, flooring at zero. Used after filling a weekly pill organizer.
func (s *MedicationService) DeductWeek(ctx context.Context, userID string) error {
	if err := s.repo.DeductStock(ctx, userID, deductDays); err != nil {
		return fmt.Errorf("failed to deduct weekly stock: %w", err)
	}
	return nil
}

func validateMedicationRequest(req *model.MedicationRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.CurrentStock < 0 {
		return fmt.Errorf("current_stock must not be negative")
	}
	if req.DailyDosage < 0 {
		return fmt.Errorf("daily_dosage must not be negative")
	}
	return nil
}
