package engine

import (
	"testing"

	"medilog-backend/internal/model"
)

func TestAggregate(t *testing.T) {
	alerts := []model.Alert{
		{OwnerID: "user-1", OwnerName: "Anna", Message: "Ibuprofen: DRINGEND: Reicht nur noch 4 Tage!"},
		{OwnerID: "user-2", OwnerName: "Ben", Message: "Vitamin D: läuft bald ab"},
		{OwnerID: "user-1", OwnerName: "Anna", Message: "Vorsorge \"Zahnarzt\" fällig am 05.07.2025 (in 20 Tagen)!"},
	}

	digests := Aggregate(alerts)

	if len(digests) != 2 {
		t.Fatalf("got %d digests, want 2", len(digests))
	}

	// Digest order follows first appearance of each owner.
	first := digests[0]
	if first.OwnerID != "user-1" {
		t.Errorf("first digest owner = %q, want user-1", first.OwnerID)
	}
	if first.Title != "MediLog Status: Anna" {
		t.Errorf("title = %q, want %q", first.Title, "MediLog Status: Anna")
	}
	wantBody := "Ibuprofen: DRINGEND: Reicht nur noch 4 Tage!\nVorsorge \"Zahnarzt\" fällig am 05.07.2025 (in 20 Tagen)!"
	if first.Body != wantBody {
		t.Errorf("body = %q, want %q", first.Body, wantBody)
	}

	second := digests[1]
	if second.OwnerID != "user-2" {
		t.Errorf("second digest owner = %q, want user-2", second.OwnerID)
	}
	if second.Body != "Vitamin D: läuft bald ab" {
		t.Errorf("body = %q, want single-line message", second.Body)
	}
}

func TestAggregate_EmptyOwnerNameFallsBack(t *testing.T) {
	digests := Aggregate([]model.Alert{
		{OwnerID: "user-1", Message: "Ibuprofen: DRINGEND: Reicht nur noch 4 Tage!"},
	})

	if len(digests) != 1 {
		t.Fatalf("got %d digests, want 1", len(digests))
	}
	if digests[0].Title != "MediLog Status: Patient" {
		t.Errorf("title = %q, want fallback name", digests[0].Title)
	}
}

func TestAggregate_NoAlerts(t *testing.T) {
	if digests := Aggregate(nil); len(digests) != 0 {
		t.Errorf("got %d digests for empty input, want 0", len(digests))
	}
}

func TestDigest_CaregiverBody(t *testing.T) {
	d := Digest{
		OwnerName: "Anna",
		Body:      "Ibuprofen: DRINGEND: Reicht nur noch 4 Tage!",
	}

	want := "Anna:\nIbuprofen: DRINGEND: Reicht nur noch 4 Tage!"
	if got := d.CaregiverBody(); got != want {
		t.Errorf("CaregiverBody() = %q, want %q", got, want)
	}
}
