package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
	"go.uber.org/zap"
)

// viewRecorder is the side-effect channel for profile views. Satisfied by
// *ViewPublisher in production.
type viewRecorder interface {
	Publish(userID, ip, userAgent string) error
}

// Profile is the public, unauthenticated view of a user's page: the user,
// their active links in display order, and theming settings.
type Profile struct {
	User       *model.User       `json:"user"`
	Links      []model.Link      `json:"links"`
	Appearance *model.Appearance `json:"appearance"`
}

// ProfileService assembles public profiles and records views as a best-effort
// side effect.
type ProfileService interface {
	GetProfile(ctx context.Context, username, ip, userAgent string) (*Profile, error)
}

type profileService struct {
	users       repository.UserRepository
	links       repository.LinkRepository
	appearances repository.AppearanceRepository
	views       viewRecorder
	filter      *UsernameFilter
	logger      *zap.Logger
}

// ProfileDeps groups dependencies for the profile service. Views and Filter
// are optional; a nil recorder disables view tracking.
type ProfileDeps struct {
	Users       repository.UserRepository
	Links       repository.LinkRepository
	Appearances repository.AppearanceRepository
	Views       viewRecorder
	Filter      *UsernameFilter
	Logger      *zap.Logger
}

// NewProfileService returns a profile assembler with the provided dependencies.
func NewProfileService(deps ProfileDeps) ProfileService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileService{
		users:       deps.Users,
		links:       deps.Links,
		appearances: deps.Appearances,
		views:       deps.Views,
		filter:      deps.Filter,
		logger:      logger,
	}
}

// GetProfile reads the profile and, on success, emits a view event without
// joining it: a failed publish never fails the read.
func (s *profileService) GetProfile(ctx context.Context, username, ip, userAgent string) (*Profile, error) {
	if s.filter != nil && !s.filter.MightContain(username) {
		return nil, repository.ErrUserNotFound
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	links, err := s.links.ListActiveByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list active links: %w", err)
	}

	appearance, err := s.appearances.GetByOwner(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrAppearanceNotFound) {
			return nil, fmt.Errorf("load appearance: %w", err)
		}
		appearance = nil
	}

	if s.views != nil {
		go s.recordView(user.ID, ip, userAgent)
	}

	return &Profile{
		User:       user,
		Links:      links,
		Appearance: appearance,
	}, nil
}

func (s *profileService) recordView(userID, ip, userAgent string) {
	if err := s.views.Publish(userID, ip, userAgent); err != nil {
		s.logger.Error("failed to publish view event", zap.Error(err), zap.String("user_id", userID))
	}
}
