package engine

import (
	"context"
	"fmt"
)

// CaregiverSource provides the accepted edges of the care graph.
// Satisfied by repository.CareRepository.
type CaregiverSource interface {
	ListAcceptedCaregiverIDs(ctx context.Context, patientID string) ([]string, error)
}

// RecipientResolver expands a patient into the full notification audience:
// the patient plus every caregiver with an accepted relationship. Pending
// caregivers are excluded, and there is no transitive expansion.
type RecipientResolver struct {
	caregivers CaregiverSource
}

func NewRecipientResolver(caregivers CaregiverSource) *RecipientResolver {
	return &RecipientResolver{caregivers: caregivers}
}

// Resolve returns the owner first, then their accepted caregivers, with
// duplicates removed.
func (r *RecipientResolver) Resolve(ctx context.Context, ownerID string) ([]string, error) {
	caregiverIDs, err := r.caregivers.ListAcceptedCaregiverIDs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients for %s: %w", ownerID, err)
	}

	seen := map[string]struct{}{ownerID: {}}
	recipients := []string{ownerID}

	for _, id := range caregiverIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	return recipients, nil
}
