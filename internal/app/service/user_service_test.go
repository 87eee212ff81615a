package service

import (
	"context"
	"errors"
	"testing"

	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
)

func TestUserService_UpdateProfile(t *testing.T) {
	repo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Username: "alice", DisplayName: "Alice", Bio: "old bio"}, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			if user.DisplayName != "Alice L." {
				t.Fatalf("expected updated display name, got %s", user.DisplayName)
			}
			if user.Bio != "old bio" {
				t.Fatalf("expected bio untouched, got %s", user.Bio)
			}
			return nil
		},
	}

	svc := NewUserService(repo, nil)
	displayName := "Alice L."
	user, err := svc.UpdateProfile(context.Background(), "u1", ProfileInput{DisplayName: &displayName})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected username preserved, got %s", user.Username)
	}
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil)
	_, err := svc.UpdateProfile(context.Background(), "missing", ProfileInput{})
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_SyncUser(t *testing.T) {
	upserted := false
	repo := &mockUserRepository{
		upsertFn: func(ctx context.Context, user *model.User) error {
			upserted = true
			if user.ID != "u1" || user.Username != "alice" {
				t.Fatalf("unexpected upsert payload: %+v", user)
			}
			return nil
		},
	}
	filter := NewUsernameFilter(100, 0.01)

	svc := NewUserService(repo, filter)
	_, err := svc.SyncUser(context.Background(), SyncUserInput{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("SyncUser returned error: %v", err)
	}
	if !upserted {
		t.Fatal("expected upsert to be called")
	}
	if !filter.MightContain("alice") {
		t.Fatal("expected filter to learn the synced username")
	}
}

func TestUserService_SyncUser_Validation(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil)

	if _, err := svc.SyncUser(context.Background(), SyncUserInput{Username: "alice"}); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected ErrMissingOwner, got %v", err)
	}
	if _, err := svc.SyncUser(context.Background(), SyncUserInput{ID: "u1"}); !errors.Is(err, ErrMissingUsername) {
		t.Fatalf("expected ErrMissingUsername, got %v", err)
	}
}
