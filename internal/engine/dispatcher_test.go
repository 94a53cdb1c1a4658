package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"medilog-backend/internal/model"
	"medilog-backend/internal/push"
)

type mockSubscriptionSource struct {
	mu      sync.Mutex
	subs    []model.PushSubscription
	deleted []string

	ListByUserFn func(ctx context.Context, userID string) ([]model.PushSubscription, error)
}

func (m *mockSubscriptionSource) ListByUser(ctx context.Context, userID string) ([]model.PushSubscription, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return m.subs, nil
}

func (m *mockSubscriptionSource) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}

type mockSender struct {
	mu    sync.Mutex
	sends []model.PushSubscription

	SendFn func(ctx context.Context, sub model.PushSubscription, payload push.Payload) error
}

func (m *mockSender) Send(ctx context.Context, sub model.PushSubscription, payload push.Payload) error {
	m.mu.Lock()
	m.sends = append(m.sends, sub)
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, sub, payload)
	}
	return nil
}

func threeSubs() []model.PushSubscription {
	return []model.PushSubscription{
		{ID: "sub-1", UserID: "user-1", Endpoint: "https://push.example/1"},
		{ID: "sub-2", UserID: "user-1", Endpoint: "https://push.example/2"},
		{ID: "sub-3", UserID: "user-1", Endpoint: "https://push.example/3"},
	}
}

func TestDispatcher_AllDevicesReached(t *testing.T) {
	store := &mockSubscriptionSource{subs: threeSubs()}
	sender := &mockSender{}
	d := NewDispatcher(store, sender)

	result, err := d.Dispatch(context.Background(), "user-1", "Titel", "Text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Sent != 3 || result.Failed != 0 {
		t.Errorf("result = %+v, want 3 sent, 0 failed", result)
	}
	if len(sender.sends) != 3 {
		t.Errorf("sender called %d times, want 3", len(sender.sends))
	}
	if len(store.deleted) != 0 {
		t.Errorf("deleted %v, want none", store.deleted)
	}
}

func TestDispatcher_DeadEndpointIsRemoved(t *testing.T) {
	store := &mockSubscriptionSource{subs: threeSubs()}
	sender := &mockSender{
		SendFn: func(ctx context.Context, sub model.PushSubscription, payload push.Payload) error {
			if sub.ID == "sub-2" {
				return push.ErrSubscriptionGone
			}
			return nil
		},
	}
	d := NewDispatcher(store, sender)

	result, err := d.Dispatch(context.Background(), "user-1", "Titel", "Text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Sent != 2 || result.Failed != 1 {
		t.Errorf("result = %+v, want 2 sent, 1 failed", result)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "sub-2" {
		t.Errorf("deleted = %v, want exactly [sub-2]", store.deleted)
	}
}

func TestDispatcher_TransientFailureKeepsSubscription(t *testing.T) {
	store := &mockSubscriptionSource{subs: threeSubs()}
	sender := &mockSender{
		SendFn: func(ctx context.Context, sub model.PushSubscription, payload push.Payload) error {
			if sub.ID == "sub-3" {
				return errors.New("push service returned status 500")
			}
			return nil
		},
	}
	d := NewDispatcher(store, sender)

	result, err := d.Dispatch(context.Background(), "user-1", "Titel", "Text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Sent != 2 || result.Failed != 1 {
		t.Errorf("result = %+v, want 2 sent, 1 failed", result)
	}
	if len(store.deleted) != 0 {
		t.Errorf("deleted = %v, transient failure must not delete", store.deleted)
	}
}

func TestDispatcher_NoDevicesIsNoop(t *testing.T) {
	store := &mockSubscriptionSource{}
	sender := &mockSender{}
	d := NewDispatcher(store, sender)

	result, err := d.Dispatch(context.Background(), "user-1", "Titel", "Text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sent != 0 || result.Failed != 0 {
		t.Errorf("result = %+v, want zero counters", result)
	}
	if len(sender.sends) != 0 {
		t.Errorf("sender called %d times, want 0", len(sender.sends))
	}
}

func TestDispatcher_ListFailure(t *testing.T) {
	store := &mockSubscriptionSource{
		ListByUserFn: func(ctx context.Context, userID string) ([]model.PushSubscription, error) {
			return nil, errors.New("db down")
		},
	}
	d := NewDispatcher(store, &mockSender{})

	if _, err := d.Dispatch(context.Background(), "user-1", "Titel", "Text"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
