package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"medilog-backend/internal/model"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     model.RegisterRequest
		exists  bool
		wantErr error
		anyErr  bool
	}{
		{
			name: "valid registration",
			req:  model.RegisterRequest{Email: "Anna@Example.com", Password: "geheim123", FullName: "Anna"},
		},
		{
			name:    "taken email",
			req:     model.RegisterRequest{Email: "anna@example.com", Password: "geheim123", FullName: "Anna"},
			exists:  true,
			wantErr: model.ErrEmailExists,
		},
		{
			name:   "missing password",
			req:    model.RegisterRequest{Email: "anna@example.com", FullName: "Anna"},
			anyErr: true,
		},
		{
			name:   "missing email",
			req:    model.RegisterRequest{Password: "geheim123", FullName: "Anna"},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *model.User
			svc := NewUserService(&mockUserRepo{
				ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) {
					return tt.exists, nil
				},
				CreateFn: func(ctx context.Context, user *model.User) error {
					created = user
					return nil
				},
			})

			user, err := svc.Register(context.Background(), &tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.anyErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Email != "anna@example.com" {
				t.Errorf("email = %q, want lowercased", user.Email)
			}
			if user.PasswordHashed == tt.req.Password {
				t.Error("password stored in plain text")
			}
			if created == nil {
				t.Error("repository Create was not called")
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	stored := &model.User{ID: "user-1", Email: "anna@example.com", PasswordHashed: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		lookup   func(ctx context.Context, email string) (*model.User, error)
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "anna@example.com",
			password: "geheim123",
			lookup: func(ctx context.Context, email string) (*model.User, error) {
				return stored, nil
			},
		},
		{
			name:     "wrong password",
			email:    "anna@example.com",
			password: "falsch",
			lookup: func(ctx context.Context, email string) (*model.User, error) {
				return stored, nil
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			// Unknown email and wrong password are indistinguishable.
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "geheim123",
			lookup: func(ctx context.Context, email string) (*model.User, error) {
				return nil, model.ErrUserNotFound
			},
			wantErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockUserRepo{GetByEmailFn: tt.lookup})

			user, err := svc.Login(context.Background(),
				&model.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != "user-1" {
				t.Errorf("user = %q, want user-1", user.ID)
			}
		})
	}
}
