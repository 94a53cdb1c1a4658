package engine

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"medilog-backend/internal/model"
)

// DefaultRecipientConcurrency bounds how many recipients are dispatched to
// in parallel across the whole run.
const DefaultRecipientConcurrency = 8

// MedicationSource provides the evaluation feed for medications.
// Satisfied by repository.MedicationRepository.
type MedicationSource interface {
	ListAll(ctx context.Context) ([]model.Medication, error)
}

// CheckupSource provides the evaluation feed for checkups plus the single
// write the engine performs: marking a checkup as notified.
// Satisfied by repository.CheckupRepository.
type CheckupSource interface {
	ListWithDueDate(ctx context.Context) ([]model.Checkup, error)
	UpdateNotifiedAt(ctx context.Context, id string, notifiedAt time.Time) error
}

// Summary is the result of one engine run, returned to the trigger surface.
type Summary struct {
	AlertsGenerated int `json:"alerts_generated"`
	Sent            int `json:"sent"`
	Failed          int `json:"failed"`
}

// Coordinator orchestrates one evaluation pass:
// fetch -> evaluate -> debounce -> aggregate -> resolve -> dispatch.
//
// Each run is a bounded, terminating batch job with no state carried
// between invocations. If a run is cancelled mid-dispatch, already-issued
// sends stand; everything undelivered is re-evaluated next run.
type Coordinator struct {
	medications MedicationSource
	checkups    CheckupSource
	evaluator   *Evaluator
	resolver    *RecipientResolver
	dispatcher  *Dispatcher

	concurrency int

	// now is injectable for tests.
	now func() time.Time
}

func NewCoordinator(
	medications MedicationSource,
	checkups CheckupSource,
	evaluator *Evaluator,
	resolver *RecipientResolver,
	dispatcher *Dispatcher,
) *Coordinator {
	return &Coordinator{
		medications: medications,
		checkups:    checkups,
		evaluator:   evaluator,
		resolver:    resolver,
		dispatcher:  dispatcher,
		concurrency: DefaultRecipientConcurrency,
		now:         time.Now,
	}
}

// Run executes one full evaluation pass and returns the summary counters.
// A medication fetch failure fails the whole run; a checkup fetch failure
// only degrades it (medications are still evaluated and dispatched).
func (c *Coordinator) Run(ctx context.Context) (Summary, error) {
	start := c.now()
	log.Printf("[Engine] Run started")

	alerts, err := c.evaluate(ctx, start)
	if err != nil {
		return Summary{}, err
	}

	digests := Aggregate(alerts)

	sent, failed := c.dispatchAll(ctx, digests)

	summary := Summary{
		AlertsGenerated: len(alerts),
		Sent:            sent,
		Failed:          failed,
	}
	log.Printf("[Engine] Run done: alerts=%d sent=%d failed=%d duration=%v",
		summary.AlertsGenerated, summary.Sent, summary.Failed, time.Since(start))
	return summary, nil
}

func (c *Coordinator) evaluate(ctx context.Context, now time.Time) ([]model.Alert, error) {
	medications, err := c.medications.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch medications: %w", err)
	}

	// Checkup fetch failures degrade the run instead of failing it:
	// medication alerts still go out.
	checkups, err := c.checkups.ListWithDueDate(ctx)
	if err != nil {
		log.Printf("[Engine] Checkup fetch failed, continuing with medications only: %v", err)
		checkups = nil
	}

	var alerts []model.Alert

	for _, med := range medications {
		if alert := c.evaluator.EvaluateMedication(med, now); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	debounce := c.evaluator.Debounce()
	for _, checkup := range checkups {
		alert := c.evaluator.EvaluateCheckup(checkup, now)
		if alert == nil {
			continue
		}
		if !debounce.ShouldNotifyCheckup(checkup.LastNotifiedAt, now) {
			continue
		}

		// Mark as notified before dispatch. This is deliberate: the
		// checkup counts as notified even if every delivery fails, so
		// repeated transient failures cannot spam the user.
		if err := c.checkups.UpdateNotifiedAt(ctx, checkup.ID, now); err != nil {
			log.Printf("[Engine] Failed to mark checkup %s notified: %v", checkup.ID, err)
		}
		alerts = append(alerts, *alert)
	}

	return alerts, nil
}

// dispatchAll fans each owner's digest out to all resolved recipients.
// Recipients are independent: a failure on one never blocks another, and
// counters are accumulated atomically across the concurrent sends.
func (c *Coordinator) dispatchAll(ctx context.Context, digests []Digest) (sent, failed int) {
	var sentTotal, failedTotal atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, digest := range digests {
		recipients, err := c.resolver.Resolve(ctx, digest.OwnerID)
		if err != nil {
			log.Printf("[Engine] Recipient resolution failed for owner=%s: %v", digest.OwnerID, err)
			recipients = []string{digest.OwnerID}
		}

		for _, recipientID := range recipients {
			digest, recipientID := digest, recipientID
			body := digest.Body
			if recipientID != digest.OwnerID {
				body = digest.CaregiverBody()
			}

			g.Go(func() error {
				result, err := c.dispatcher.Dispatch(gctx, recipientID, digest.Title, body)
				if err != nil {
					log.Printf("[Engine] Dispatch failed for recipient=%s: %v", recipientID, err)
					return nil
				}
				sentTotal.Add(int64(result.Sent))
				failedTotal.Add(int64(result.Failed))
				return nil
			})
		}
	}

	_ = g.Wait()

	return int(sentTotal.Load()), int(failedTotal.Load())
}
