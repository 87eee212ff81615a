package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
)

var (
	ErrMissingUsername = errors.New("username is required")
)

// UserService exposes the authenticated user's own profile record and the
// identity-provider sync that materializes users on first authentication.
type UserService interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, input ProfileInput) (*model.User, error)
	SyncUser(ctx context.Context, input SyncUserInput) (*model.User, error)
}

// ProfileInput captures the mutable profile fields. Nil means "leave unchanged".
type ProfileInput struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// SyncUserInput is the identity-provider payload upserted on first sight.
type SyncUserInput struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
}

type userService struct {
	repo   repository.UserRepository
	filter *UsernameFilter
}

// NewUserService returns a service backed by the given repository. The filter
// is optional and, when present, learns usernames as they are synced.
func NewUserService(repo repository.UserRepository, filter *UsernameFilter) UserService {
	return &userService{repo: repo, filter: filter}
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// SyncUser upserts the user row owned by the identity provider and feeds the
// username filter so the public profile path can see the new name.
func (s *userService) SyncUser(ctx context.Context, input SyncUserInput) (*model.User, error) {
	if input.ID == "" {
		return nil, ErrMissingOwner
	}
	if input.Username == "" {
		return nil, ErrMissingUsername
	}

	user := &model.User{
		ID:          input.ID,
		Username:    input.Username,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("sync user: %w", err)
	}

	if s.filter != nil {
		s.filter.Add(user.Username)
	}
	return user, nil
}
