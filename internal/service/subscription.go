package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"medilog-backend/internal/engine"
	"medilog-backend/internal/model"
	"medilog-backend/internal/repository"
)

// SubscriptionService manages push device registrations.
type SubscriptionService struct {
	repo       repository.SubscriptionRepository
	dispatcher *engine.Dispatcher
}

func NewSubscriptionService(repo repository.SubscriptionRepository, dispatcher *engine.Dispatcher) *SubscriptionService {
	return &SubscriptionService{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Subscribe registers a device for the caller. Re-subscribing an endpoint
// already known moves it to the caller's account instead of duplicating it.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID string, req *model.SubscribeRequest) (*model.PushSubscription, error) {
	if req.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return nil, fmt.Errorf("subscription keys are required")
	}

	sub := &model.PushSubscription{
		ID:       uuid.NewString(),
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}

	if err := s.repo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}
	return sub, nil
}

// Unsubscribe removes the caller's registration for one endpoint.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	return s.repo.DeleteByEndpoint(ctx, userID, endpoint)
}

// SendTest pushes a test message to every device of the caller, going
// through the same dispatch path the alert engine uses.
func (s *SubscriptionService) SendTest(ctx context.Context, userID string) (engine.DispatchResult, error) {
	return s.dispatcher.Dispatch(ctx, userID,
		"MediLog Test", "Push-Benachrichtigungen funktionieren!")
}
