package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"medilog-backend/internal/model"
)

type mockCheckupRepo struct {
	CreateFn           func(ctx context.Context, checkup *model.Checkup) error
	UpdateFn           func(ctx context.Context, checkup *model.Checkup) error
	DeleteFn           func(ctx context.Context, id, userID string) error
	GetByIDFn          func(ctx context.Context, id, userID string) (*model.Checkup, error)
	ListByUserFn       func(ctx context.Context, userID string) ([]model.Checkup, error)
	ListWithDueDateFn  func(ctx context.Context) ([]model.Checkup, error)
	UpdateNotifiedAtFn func(ctx context.Context, id string, notifiedAt time.Time) error
}

func (m *mockCheckupRepo) Create(ctx context.Context, checkup *model.Checkup) error {
	return m.CreateFn(ctx, checkup)
}
func (m *mockCheckupRepo) Update(ctx context.Context, checkup *model.Checkup) error {
	return m.UpdateFn(ctx, checkup)
}
func (m *mockCheckupRepo) Delete(ctx context.Context, id, userID string) error {
	return m.DeleteFn(ctx, id, userID)
}
func (m *mockCheckupRepo) GetByID(ctx context.Context, id, userID string) (*model.Checkup, error) {
	return m.GetByIDFn(ctx, id, userID)
}
func (m *mockCheckupRepo) ListByUser(ctx context.Context, userID string) ([]model.Checkup, error) {
	return m.ListByUserFn(ctx, userID)
}
func (m *mockCheckupRepo) ListWithDueDate(ctx context.Context) ([]model.Checkup, error) {
	return m.ListWithDueDateFn(ctx)
}
func (m *mockCheckupRepo) UpdateNotifiedAt(ctx context.Context, id string, notifiedAt time.Time) error {
	return m.UpdateNotifiedAtFn(ctx, id, notifiedAt)
}

var checkupNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newCheckupService(repo *mockCheckupRepo) *CheckupService {
	svc := NewCheckupService(repo)
	svc.now = func() time.Time { return checkupNow }
	return svc
}

func TestCheckupService_Create(t *testing.T) {
	lastVisit := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		req         model.CheckupRequest
		wantErr     error
		wantAnyErr  bool
		wantNextDue time.Time
	}{
		{
			name: "six months from last visit",
			req: model.CheckupRequest{
				Title: "Zahnarzt", FrequencyValue: 6, FrequencyUnit: model.FrequencyMonths,
				LastVisitDate: &lastVisit,
			},
			wantNextDue: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "two years from last visit",
			req: model.CheckupRequest{
				Title: "Hautscreening", FrequencyValue: 2, FrequencyUnit: model.FrequencyYears,
				LastVisitDate: &lastVisit,
			},
			wantNextDue: time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			// Without a last visit the schedule anchors on today.
			name: "no last visit anchors on now",
			req: model.CheckupRequest{
				Title: "Zahnarzt", FrequencyValue: 6, FrequencyUnit: model.FrequencyMonths,
			},
			wantNextDue: checkupNow.AddDate(0, 6, 0),
		},
		{
			name: "invalid unit",
			req: model.CheckupRequest{
				Title: "Zahnarzt", FrequencyValue: 6, FrequencyUnit: "weeks",
			},
			wantErr: model.ErrInvalidFrequency,
		},
		{
			name: "non-positive value",
			req: model.CheckupRequest{
				Title: "Zahnarzt", FrequencyValue: 0, FrequencyUnit: model.FrequencyMonths,
			},
			wantErr: model.ErrInvalidFrequency,
		},
		{
			name: "missing title",
			req: model.CheckupRequest{
				FrequencyValue: 6, FrequencyUnit: model.FrequencyMonths,
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCheckupService(&mockCheckupRepo{
				CreateFn: func(ctx context.Context, checkup *model.Checkup) error { return nil },
			})

			checkup, err := svc.Create(context.Background(), "user-1", &tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantAnyErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if checkup.NextDueDate == nil || !checkup.NextDueDate.Equal(tt.wantNextDue) {
				t.Errorf("next due = %v, want %v", checkup.NextDueDate, tt.wantNextDue)
			}
		})
	}
}

func TestCheckupService_Complete(t *testing.T) {
	actual := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	var updated *model.Checkup
	svc := newCheckupService(&mockCheckupRepo{
		GetByIDFn: func(ctx context.Context, id, userID string) (*model.Checkup, error) {
			return &model.Checkup{
				ID: id, UserID: userID, Title: "Zahnarzt",
				FrequencyValue: 6, FrequencyUnit: model.FrequencyMonths,
			}, nil
		},
		UpdateFn: func(ctx context.Context, checkup *model.Checkup) error {
			updated = checkup
			return nil
		},
	})

	checkup, err := svc.Complete(context.Background(), "chk-1", "user-1",
		&model.CompleteCheckupRequest{ActualDate: actual})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if checkup.LastVisitDate == nil || !checkup.LastVisitDate.Equal(actual) {
		t.Errorf("last visit = %v, want %v", checkup.LastVisitDate, actual)
	}
	wantNextDue := actual.AddDate(0, 6, 0)
	if checkup.NextDueDate == nil || !checkup.NextDueDate.Equal(wantNextDue) {
		t.Errorf("next due = %v, want %v", checkup.NextDueDate, wantNextDue)
	}
	if updated == nil {
		t.Error("repository Update was not called")
	}
}

func TestCheckupService_CompleteRequiresDate(t *testing.T) {
	svc := newCheckupService(&mockCheckupRepo{})

	_, err := svc.Complete(context.Background(), "chk-1", "user-1", &model.CompleteCheckupRequest{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
