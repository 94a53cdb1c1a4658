package engine

import (
	"fmt"
	"strings"

	"medilog-backend/internal/model"
)

// Digest is the one message produced per owning user per run. Sending one
// aggregated push per user instead of one per alert keeps a bad week from
// turning into a notification storm.
type Digest struct {
	OwnerID   string
	OwnerName string
	Title     string
	Body      string
}

// CaregiverBody prefixes the digest with the patient's display name so a
// caregiver receiving a copy knows whose data the alert concerns.
func (d Digest) CaregiverBody() string {
	return fmt.Sprintf("%s:\n%s", d.OwnerName, d.Body)
}

// Aggregate groups the run's alerts by owning user and joins each group's
// message lines into a single body. Digest order follows the first
// appearance of each owner in the input, so output is deterministic for a
// given evaluation order.
func Aggregate(alerts []model.Alert) []Digest {
	byOwner := make(map[string]int)
	digests := []Digest{}

	for _, alert := range alerts {
		idx, ok := byOwner[alert.OwnerID]
		if !ok {
			name := alert.OwnerName
			if name == "" {
				name = "Patient"
			}
			digests = append(digests, Digest{
				OwnerID:   alert.OwnerID,
				OwnerName: name,
				Title:     "MediLog Status: " + name,
			})
			idx = len(digests) - 1
			byOwner[alert.OwnerID] = idx
		}

		if digests[idx].Body != "" {
			digests[idx].Body += "\n"
		}
		digests[idx].Body += strings.TrimSpace(alert.Message)
	}

	return digests
}
