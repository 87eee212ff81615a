package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
)

// AppearanceService manages a user's theming record. Writes are upserts.
type AppearanceService interface {
	GetAppearance(ctx context.Context, ownerID string) (*model.Appearance, error)
	SaveAppearance(ctx context.Context, ownerID string, input AppearanceInput) (*model.Appearance, error)
}

// AppearanceInput carries the full theming payload; saving replaces the record.
type AppearanceInput struct {
	Theme           string
	BackgroundColor string
	TextColor       string
	ButtonStyle     string
	Font            string
	ShowAvatar      bool
	ShowSocials     bool
}

type appearanceService struct {
	repo repository.AppearanceRepository
}

// NewAppearanceService returns a service backed by the given repository.
func NewAppearanceService(repo repository.AppearanceRepository) AppearanceService {
	return &appearanceService{repo: repo}
}

// GetAppearance returns the stored record, or defaults when the user never
// saved one. The defaults are not persisted.
func (s *appearanceService) GetAppearance(ctx context.Context, ownerID string) (*model.Appearance, error) {
	appearance, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrAppearanceNotFound) {
			return defaultAppearance(ownerID), nil
		}
		return nil, fmt.Errorf("load appearance: %w", err)
	}
	return appearance, nil
}

func (s *appearanceService) SaveAppearance(ctx context.Context, ownerID string, input AppearanceInput) (*model.Appearance, error) {
	appearance := &model.Appearance{
		ID:              uuid.New().String(),
		UserID:          ownerID,
		Theme:           input.Theme,
		BackgroundColor: input.BackgroundColor,
		TextColor:       input.TextColor,
		ButtonStyle:     input.ButtonStyle,
		Font:            input.Font,
		ShowAvatar:      input.ShowAvatar,
		ShowSocials:     input.ShowSocials,
	}
	if appearance.Theme == "" {
		appearance.Theme = "default"
	}

	if err := s.repo.Upsert(ctx, appearance); err != nil {
		return nil, fmt.Errorf("save appearance: %w", err)
	}

	// The insert id loses to the existing row on conflict; read back the
	// stored record so callers see what persisted.
	stored, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reload appearance: %w", err)
	}
	return stored, nil
}

func defaultAppearance(ownerID string) *model.Appearance {
	return &model.Appearance{
		UserID:      ownerID,
		Theme:       "default",
		ShowAvatar:  true,
		ShowSocials: true,
	}
}
