package service

import (
	"context"
	"errors"
	"testing"

	"medilog-backend/internal/model"
)

type mockMedicationRepo struct {
	CreateFn      func(ctx context.Context, med *model.Medication) error
	UpdateFn      func(ctx context.Context, med *model.Medication) error
	DeleteFn      func(ctx context.Context, id, userID string) error
	GetByIDFn     func(ctx context.Context, id, userID string) (*model.Medication, error)
	ListByUserFn  func(ctx context.Context, userID string) ([]model.Medication, error)
	ListAllFn     func(ctx context.Context) ([]model.Medication, error)
	DeductStockFn func(ctx context.Context, userID string, days int) error
}

func (m *mockMedicationRepo) Create(ctx context.Context, med *model.Medication) error {
	return m.CreateFn(ctx, med)
}
func (m *mockMedicationRepo) Update(ctx context.Context, med *model.Medication) error {
	return m.UpdateFn(ctx, med)
}
func (m *mockMedicationRepo) Delete(ctx context.Context, id, userID string) error {
	return m.DeleteFn(ctx, id, userID)
}
func (m *mockMedicationRepo) GetByID(ctx context.Context, id, userID string) (*model.Medication, error) {
	return m.GetByIDFn(ctx, id, userID)
}
func (m *mockMedicationRepo) ListByUser(ctx context.Context, userID string) ([]model.Medication, error) {
	return m.ListByUserFn(ctx, userID)
}
func (m *mockMedicationRepo) ListAll(ctx context.Context) ([]model.Medication, error) {
	return m.ListAllFn(ctx)
}
func (m *mockMedicationRepo) DeductStock(ctx context.Context, userID string, days int) error {
	return m.DeductStockFn(ctx, userID, days)
}

func TestMedicationService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     model.MedicationRequest
		wantErr bool
	}{
		{
			name: "valid medication",
			req:  model.MedicationRequest{Name: "Ibuprofen", CurrentStock: 20, DailyDosage: 2},
		},
		{
			name:    "missing name",
			req:     model.MedicationRequest{CurrentStock: 20, DailyDosage: 2},
			wantErr: true,
		},
		{
			name:    "negative stock",
			req:     model.MedicationRequest{Name: "Ibuprofen", CurrentStock: -1, DailyDosage: 2},
			wantErr: true,
		},
		{
			name:    "negative dosage",
			req:     model.MedicationRequest{Name: "Ibuprofen", CurrentStock: 20, DailyDosage: -2},
			wantErr: true,
		},
		{
			// Dosage zero is allowed: as-needed medication without a
			// daily schedule.
			name: "zero dosage",
			req:  model.MedicationRequest{Name: "Bedarfsmedikament", CurrentStock: 20, DailyDosage: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *model.Medication
			svc := NewMedicationService(&mockMedicationRepo{
				CreateFn: func(ctx context.Context, med *model.Medication) error {
					created = med
					return nil
				},
			})

			med, err := svc.Create(context.Background(), "user-1", &tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if med.ID == "" {
				t.Error("medication has no ID")
			}
			if med.UserID != "user-1" {
				t.Errorf("user = %q, want user-1", med.UserID)
			}
			if created == nil {
				t.Error("repository Create was not called")
			}
		})
	}
}

func TestMedicationService_DeductWeek(t *testing.T) {
	var gotUserID string
	var gotDays int
	svc := NewMedicationService(&mockMedicationRepo{
		DeductStockFn: func(ctx context.Context, userID string, days int) error {
			gotUserID = userID
			gotDays = days
			return nil
		},
	})

	if err := svc.DeductWeek(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != "user-1" || gotDays != 7 {
		t.Errorf("DeductStock(%q, %d), want (user-1, 7)", gotUserID, gotDays)
	}
}

func TestMedicationService_UpdateNotFound(t *testing.T) {
	svc := NewMedicationService(&mockMedicationRepo{
		GetByIDFn: func(ctx context.Context, id, userID string) (*model.Medication, error) {
			return nil, model.ErrMedicationNotFound
		},
	})

	_, err := svc.Update(context.Background(), "med-1", "user-1",
		&model.MedicationRequest{Name: "Ibuprofen", CurrentStock: 10, DailyDosage: 1})
	if !errors.Is(err, model.ErrMedicationNotFound) {
		t.Errorf("err = %v, want ErrMedicationNotFound", err)
	}
}
