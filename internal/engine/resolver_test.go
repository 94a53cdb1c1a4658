package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type mockCaregiverSource struct {
	ListAcceptedCaregiverIDsFn func(ctx context.Context, patientID string) ([]string, error)
}

func (m *mockCaregiverSource) ListAcceptedCaregiverIDs(ctx context.Context, patientID string) ([]string, error) {
	return m.ListAcceptedCaregiverIDsFn(ctx, patientID)
}

func TestRecipientResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		caregivers []string
		want       []string
	}{
		{
			name:       "owner plus accepted caregivers",
			caregivers: []string{"care-1", "care-2"},
			want:       []string{"owner-1", "care-1", "care-2"},
		},
		{
			name:       "no caregivers",
			caregivers: nil,
			want:       []string{"owner-1"},
		},
		{
			name:       "duplicate caregiver collapsed",
			caregivers: []string{"care-1", "care-1"},
			want:       []string{"owner-1", "care-1"},
		},
		{
			name:       "owner listed as own caregiver is not doubled",
			caregivers: []string{"owner-1", "care-1"},
			want:       []string{"owner-1", "care-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewRecipientResolver(&mockCaregiverSource{
				ListAcceptedCaregiverIDsFn: func(ctx context.Context, patientID string) ([]string, error) {
					if patientID != "owner-1" {
						t.Errorf("queried patientID = %q, want owner-1", patientID)
					}
					return tt.caregivers, nil
				},
			})

			got, err := resolver.Resolve(context.Background(), "owner-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecipientResolver_ResolveError(t *testing.T) {
	resolver := NewRecipientResolver(&mockCaregiverSource{
		ListAcceptedCaregiverIDsFn: func(ctx context.Context, patientID string) ([]string, error) {
			return nil, errors.New("db down")
		},
	})

	if _, err := resolver.Resolve(context.Background(), "owner-1"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
