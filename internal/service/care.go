package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"medilog-backend/internal/model"
	"medilog-backend/internal/repository"
)

// invitesPerHour caps how many caregiver invites one user can attempt per
// hour. Invites probe whether an email is registered, so the quota limits
// account enumeration.
const invitesPerHour = 5

// CareService manages the patient -> caregiver relationship graph.
type CareService struct {
	repo     repository.CareRepository
	userRepo repository.UserRepository

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewCareService(repo repository.CareRepository, userRepo repository.UserRepository) *CareService {
	return &CareService{
		repo:     repo,
		userRepo: userRepo,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Invite sends a care request to the user registered under the given email.
// An unknown email and an already-invited caregiver both return success, so
// the response never reveals whether an address is registered.
func (s *CareService) Invite(ctx context.Context, patientID string, req *model.InviteCaregiverRequest) error {
	if !s.allowInvite(patientID) {
		return model.ErrInviteRateLimited
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	target, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Silent success: don't leak which emails exist.
			return nil
		}
		return fmt.Errorf("failed to look up invitee: %w", err)
	}

	if target.ID == patientID {
		return model.ErrSelfInvite
	}

	exists, err := s.repo.Exists(ctx, patientID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to check relationship: %w", err)
	}
	if exists {
		// Silent success: re-inviting must look identical to inviting.
		return nil
	}

	rel := &model.CareRelationship{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		CaregiverID: target.ID,
		Status:      model.CareStatusPending,
	}
	if err := s.repo.Create(ctx, rel); err != nil {
		return fmt.Errorf("failed to create care relationship: %w", err)
	}
	return nil
}

// Respond accepts or declines a pending invite. Only the invited caregiver
// may respond; a decline deletes the relationship.
func (s *CareService) Respond(ctx context.Context, relationshipID, caregiverID string, req *model.RespondInviteRequest) error {
	if req.Accept {
		return s.repo.Accept(ctx, relationshipID, caregiverID)
	}

	rel, err := s.repo.GetByID(ctx, relationshipID)
	if err != nil {
		return err
	}
	if rel.CaregiverID != caregiverID {
		return model.ErrRelationshipNotFound
	}
	return s.repo.Delete(ctx, relationshipID)
}

// Remove lets a patient revoke a caregiver, pending or accepted.
func (s *CareService) Remove(ctx context.Context, relationshipID, patientID string) error {
	rel, err := s.repo.GetByID(ctx, relationshipID)
	if err != nil {
		return err
	}
	if rel.PatientID != patientID {
		return model.ErrRelationshipNotFound
	}
	return s.repo.Delete(ctx, relationshipID)
}

// ListCaregivers returns the patient's caregivers, pending and accepted.
func (s *CareService) ListCaregivers(ctx context.Context, patientID string) ([]model.CaregiverSummary, error) {
	return s.repo.ListCaregivers(ctx, patientID)
}

// ListPendingInvites returns open requests where the caller is the invitee.
func (s *CareService) ListPendingInvites(ctx context.Context, caregiverID string) ([]model.PendingInvite, error) {
	return s.repo.ListPendingInvites(ctx, caregiverID)
}

func (s *CareService) allowInvite(patientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[patientID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Hour/invitesPerHour), invitesPerHour)
		s.limiters[patientID] = limiter
	}
	return limiter.Allow()
}
