package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"medilog-backend/internal/model"
	"medilog-backend/internal/push"
)

const (
	// DefaultDeviceConcurrency bounds parallel sends to one recipient's
	// devices.
	DefaultDeviceConcurrency = 4

	// perSendTimeout caps a single delivery attempt so one hung push
	// service cannot stall the batch.
	perSendTimeout = 15 * time.Second
)

// SubscriptionSource provides the device registry reads and the
// self-healing delete. Satisfied by repository.SubscriptionRepository.
type SubscriptionSource interface {
	ListByUser(ctx context.Context, userID string) ([]model.PushSubscription, error)
	Delete(ctx context.Context, id string) error
}

// DispatchResult counts per-device outcomes for one recipient.
type DispatchResult struct {
	Sent   int
	Failed int
}

// Dispatcher delivers one aggregated message to every registered device of
// a recipient. Deliveries are fire-and-forget: failures are counted, never
// retried within the run, and a dead endpoint (HTTP 404/410) is removed
// from the registry so it stops consuming send attempts.
type Dispatcher struct {
	subscriptions SubscriptionSource
	sender        push.Sender
	concurrency   int
}

func NewDispatcher(subscriptions SubscriptionSource, sender push.Sender) *Dispatcher {
	return &Dispatcher{
		subscriptions: subscriptions,
		sender:        sender,
		concurrency:   DefaultDeviceConcurrency,
	}
}

// Dispatch sends (title, body) to every device of recipientID. A recipient
// with zero devices is a no-op, not an error. Device sends run concurrently
// and never short-circuit each other: every device gets its attempt and
// every outcome is counted.
func (d *Dispatcher) Dispatch(ctx context.Context, recipientID, title, body string) (DispatchResult, error) {
	subs, err := d.subscriptions.ListByUser(ctx, recipientID)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("list subscriptions for %s: %w", recipientID, err)
	}

	if len(subs) == 0 {
		return DispatchResult{}, nil
	}

	payload := push.DefaultPayload(title, body)

	var sent, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(gctx, perSendTimeout)
			defer cancel()

			err := d.sender.Send(sendCtx, sub, payload)
			switch {
			case err == nil:
				sent.Add(1)
			case errors.Is(err, push.ErrSubscriptionGone):
				failed.Add(1)
				// Endpoint permanently gone: self-heal the registry.
				// Deleting twice is a no-op, so racing runs are safe.
				if delErr := d.subscriptions.Delete(ctx, sub.ID); delErr != nil {
					log.Printf("[Dispatcher] Failed to delete dead subscription %s: %v", sub.ID, delErr)
				} else {
					log.Printf("[Dispatcher] Removed dead subscription %s (user=%s)", sub.ID, recipientID)
				}
			default:
				failed.Add(1)
				log.Printf("[Dispatcher] Push failed for user=%s sub=%s: %v", recipientID, sub.ID, err)
			}
			// Always nil: one device's failure must not cancel the rest.
			return nil
		})
	}

	_ = g.Wait()

	return DispatchResult{
		Sent:   int(sent.Load()),
		Failed: int(failed.Load()),
	}, nil
}
