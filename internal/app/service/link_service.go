package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
)

// Validation errors rejected before any store call.
var (
	ErrEmptyTitle         = errors.New("title is required")
	ErrEmptyURL           = errors.New("url is required")
	ErrEmptyReorder       = errors.New("reorder payload is empty")
	ErrDuplicateReorderID = errors.New("reorder payload contains duplicate link ids")
)

// IsValidation reports whether err is an input validation error, as opposed to
// a not-found or store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrEmptyURL) ||
		errors.Is(err, ErrEmptyReorder) ||
		errors.Is(err, ErrDuplicateReorderID) ||
		errors.Is(err, ErrMissingOwner) ||
		errors.Is(err, ErrMissingLink) ||
		errors.Is(err, ErrMissingUsername)
}

// LinkService owns the invariant that a user's links form a total order and
// that structural mutations are atomic and owner-scoped.
type LinkService interface {
	ListLinks(ctx context.Context, ownerID string) ([]model.Link, error)
	CreateLink(ctx context.Context, ownerID string, input CreateLinkInput) (*model.Link, error)
	UpdateLink(ctx context.Context, ownerID, linkID string, input UpdateLinkInput) (*model.Link, error)
	DeleteLink(ctx context.Context, ownerID, linkID string) error
	ReorderLinks(ctx context.Context, ownerID string, items []ReorderItem) error
}

type linkService struct {
	repo repository.LinkRepository
}

// NewLinkService returns a service implementation backed by the given repository.
func NewLinkService(repo repository.LinkRepository) LinkService {
	return &linkService{repo: repo}
}

// CreateLinkInput captures data required to create a link. Position defaults
// to 0 when omitted; new links do not auto-append to the end.
type CreateLinkInput struct {
	Title    string
	URL      string
	Icon     *string
	Position *int
}

// UpdateLinkInput captures fields that can be changed on an existing link.
// Nil means "leave unchanged".
type UpdateLinkInput struct {
	Title    *string
	URL      *string
	Icon     *string
	IsActive *bool
}

// ReorderItem is one (link id, new position) pair of a reorder batch.
type ReorderItem struct {
	ID       string
	Position int
}

func (s *linkService) ListLinks(ctx context.Context, ownerID string) ([]model.Link, error) {
	links, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

func (s *linkService) CreateLink(ctx context.Context, ownerID string, input CreateLinkInput) (*model.Link, error) {
	if input.Title == "" {
		return nil, ErrEmptyTitle
	}
	if input.URL == "" {
		return nil, ErrEmptyURL
	}

	position := 0
	if input.Position != nil {
		position = *input.Position
	}

	link := &model.Link{
		ID:       uuid.New().String(),
		UserID:   ownerID,
		Title:    input.Title,
		URL:      input.URL,
		Icon:     input.Icon,
		Position: position,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *linkService) UpdateLink(ctx context.Context, ownerID, linkID string, input UpdateLinkInput) (*model.Link, error) {
	if input.Title != nil && *input.Title == "" {
		return nil, ErrEmptyTitle
	}
	if input.URL != nil && *input.URL == "" {
		return nil, ErrEmptyURL
	}

	link, err := s.repo.GetByID(ctx, ownerID, linkID)
	if err != nil {
		return nil, fmt.Errorf("load link: %w", err)
	}

	if input.Title != nil {
		link.Title = *input.Title
	}
	if input.URL != nil {
		link.URL = *input.URL
	}
	if input.Icon != nil {
		link.Icon = input.Icon
	}
	if input.IsActive != nil {
		link.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}
	return link, nil
}

func (s *linkService) DeleteLink(ctx context.Context, ownerID, linkID string) error {
	if err := s.repo.Delete(ctx, ownerID, linkID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

// ReorderLinks applies every (id, position) pair as one atomic unit. A payload
// referencing a link the owner does not hold fails the whole batch.
func (s *linkService) ReorderLinks(ctx context.Context, ownerID string, items []ReorderItem) error {
	if len(items) == 0 {
		return ErrEmptyReorder
	}

	seen := make(map[string]struct{}, len(items))
	positions := make([]repository.LinkPosition, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return ErrDuplicateReorderID
		}
		seen[item.ID] = struct{}{}
		positions = append(positions, repository.LinkPosition{ID: item.ID, Position: item.Position})
	}

	if err := s.repo.Reorder(ctx, ownerID, positions); err != nil {
		return fmt.Errorf("reorder links: %w", err)
	}
	return nil
}
