package repository

import (
	"context"
	"errors"

	"github.com/plinkhq/plink/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrLinkNotFound signals that no link matches the id under the given owner.
	// Cross-owner references surface as this same error so nothing leaks.
	ErrLinkNotFound = errors.New("link not found")
)

// LinkPosition pairs a link id with its new zero-based position in a reorder batch.
type LinkPosition struct {
	ID       string
	Position int
}

// LinkRepository defines the data access contract for a user's ordered links.
// Every query is scoped by the owning user id.
type LinkRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]model.Link, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]model.Link, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Link, error)
	Create(ctx context.Context, link *model.Link) error
	Update(ctx context.Context, link *model.Link) error
	Delete(ctx context.Context, ownerID, id string) error
	Reorder(ctx context.Context, ownerID string, positions []LinkPosition) error
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository returns a GORM-backed LinkRepository.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// displayOrder keeps reads deterministic: positions are not unique-enforced,
// so ties fall back to creation order.
const displayOrder = "position ASC, created_at ASC, id ASC"

func (r *linkRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Link, error) {
	var result []model.Link
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(displayOrder).
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *linkRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]model.Link, error) {
	var result []model.Link
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", ownerID, true).
		Order(displayOrder).
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *linkRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Link, error) {
	var link model.Link
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) Create(ctx context.Context, link *model.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) Update(ctx context.Context, link *model.Link) error {
	result := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ? AND user_id = ?", link.ID, link.UserID).
		Updates(map[string]interface{}{
			"title":     link.Title,
			"url":       link.URL,
			"icon":      link.Icon,
			"is_active": link.IsActive,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}

	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", link.ID, link.UserID).
		First(link).Error
}

func (r *linkRepository) Delete(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Link{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Reorder applies the whole batch inside one transaction. A pair referencing a
// row the owner does not hold aborts everything, so readers never observe a
// partially applied order.
func (r *linkRepository) Reorder(ctx context.Context, ownerID string, positions []LinkPosition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range positions {
			result := tx.Model(&model.Link{}).
				Where("id = ? AND user_id = ?", p.ID, ownerID).
				Update("position", p.Position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrLinkNotFound
			}
		}
		return nil
	})
}
