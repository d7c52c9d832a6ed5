package service_test

import (
	"context"
	"errors"
	"testing"

	"triviasnake/internal/model"
	"triviasnake/internal/repository"
	"triviasnake/internal/service"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := service.NewAuthService(newFakeUserRepo(), "test-secret")

	if err := svc.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.Username != "alice" {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Username != "alice" || claims.UserID != resp.UserID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := service.NewAuthService(newFakeUserRepo(), "test-secret")

	if err := svc.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "bob", "hunter2"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewAuthService(newFakeUserRepo(), "test-secret")

	var ve *service.ValidationError
	if err := svc.Register(ctx, "", "hunter2"); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for empty username, got %v", err)
	}
	if err := svc.Register(ctx, "alice", ""); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}

	if err := svc.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Register(ctx, "alice", "other"); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for duplicate username, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := service.NewAuthService(newFakeUserRepo(), "test-secret")

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	other := service.NewAuthService(newFakeUserRepo(), "different-secret")
	if err := other.Register(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	resp, err := other.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected rejection for token signed with another secret, got %v", err)
	}
}
