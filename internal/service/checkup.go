package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medilog-backend/internal/model"
	"medilog-backend/internal/repository"
)

// CheckupService handles business logic for recurring checkup reminders.
type CheckupService struct {
	repo repository.CheckupRepository

	// now is injectable for tests.
	now func() time.Time
}

func NewCheckupService(repo repository.CheckupRepository) *CheckupService {
	return &CheckupService{
		repo: repo,
		now:  time.Now,
	}
}

// Create adds a recurring checkup. The next due date is computed from the
// last visit when one is given, otherwise from today.
func (s *CheckupService) Create(ctx context.Context, userID string, req *model.CheckupRequest) (*model.Checkup, error) {
	if err := validateCheckupRequest(req); err != nil {
		return nil, err
	}

	anchor := s.now()
	if req.LastVisitDate != nil {
		anchor = *req.LastVisitDate
	}
	nextDue := addFrequency(anchor, req.FrequencyValue, req.FrequencyUnit)

	checkup := &model.Checkup{
		ID:             uuid.NewString(),
		UserID:         userID,
		PatientID:      req.PatientID,
		Title:          strings.TrimSpace(req.Title),
		FrequencyValue: req.FrequencyValue,
		FrequencyUnit:  req.FrequencyUnit,
		LastVisitDate:  req.LastVisitDate,
		NextDueDate:    &nextDue,
		Notes:          req.Notes,
	}

	if err := s.repo.Create(ctx, checkup); err != nil {
		return nil, fmt.Errorf("failed to create checkup: %w", err)
	}
	return checkup, nil
}

// Update replaces a checkup's fields and recomputes the next due date from
// the new frequency and last visit.
func (s *CheckupService) Update(ctx context.Context, id, userID string, req *model.CheckupRequest) (*model.Checkup, error) {
	if err := validateCheckupRequest(req); err != nil {
		return nil, err
	}

	checkup, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	checkup.Title = strings.TrimSpace(req.Title)
	checkup.FrequencyValue = req.FrequencyValue
	checkup.FrequencyUnit = req.FrequencyUnit
	checkup.PatientID = req.PatientID
	checkup.Notes = req.Notes
	checkup.LastVisitDate = req.LastVisitDate

	anchor := s.now()
	if checkup.LastVisitDate != nil {
		anchor = *checkup.LastVisitDate
	}
	nextDue := addFrequency(anchor, checkup.FrequencyValue, checkup.FrequencyUnit)
	checkup.NextDueDate = &nextDue

	if err := s.repo.Update(ctx, checkup); err != nil {
		return nil, fmt.Errorf("failed to update checkup: %w", err)
	}
	return checkup, nil
}

// Complete records an actual visit: the visit date becomes the new anchor
// and the next due date rolls forward one full frequency interval from it.
func (s *CheckupService) Complete(ctx context.Context, id, userID string, req *model.CompleteCheckupRequest) (*model.Checkup, error) {
	if req.ActualDate.IsZero() {
		return nil, fmt.Errorf("actual_date is required")
	}

	checkup, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	actual := req.ActualDate
	nextDue := addFrequency(actual, checkup.FrequencyValue, checkup.FrequencyUnit)

	checkup.LastVisitDate = &actual
	checkup.NextDueDate = &nextDue

	if err := s.repo.Update(ctx, checkup); err != nil {
		return nil, fmt.Errorf("failed to complete checkup: %w", err)
	}
	return checkup, nil
}

// Delete removes a checkup owned by the caller.
func (s *CheckupService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

// GetByID fetches one checkup owned by the caller.
func (s *CheckupService) GetByID(ctx context.Context, id, userID string) (*model.Checkup, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// ListByUser returns the caller's checkups.
func (s *CheckupService) ListByUser(ctx context.Context, userID string) ([]model.Checkup, error) {
	return s.repo.ListByUser(ctx, userID)
}

func validateCheckupRequest(req *model.CheckupRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if req.FrequencyValue <= 0 {
		return model.ErrInvalidFrequency
	}
	if req.FrequencyUnit != model.FrequencyMonths && req.FrequencyUnit != model.FrequencyYears {
		return model.ErrInvalidFrequency
	}
	return nil
}

func addFrequency(anchor time.Time, value int, unit string) time.Time {
	if unit == model.FrequencyYears {
		return anchor.AddDate(value, 0, 0)
	}
	return anchor.AddDate(0, value, 0)
}
