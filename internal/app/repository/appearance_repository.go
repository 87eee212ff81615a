package repository

import (
	"context"
	"errors"

	"github.com/plinkhq/plink/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAppearanceNotFound signals that the user has never saved appearance settings.
	ErrAppearanceNotFound = errors.New("appearance not found")
)

// AppearanceRepository defines the data access contract for per-user theming.
type AppearanceRepository interface {
	GetByOwner(ctx context.Context, ownerID string) (*model.Appearance, error)
	Upsert(ctx context.Context, appearance *model.Appearance) error
}

type appearanceRepository struct {
	db *gorm.DB
}

// NewAppearanceRepository returns a GORM-backed AppearanceRepository.
func NewAppearanceRepository(db *gorm.DB) AppearanceRepository {
	return &appearanceRepository{db: db}
}

func (r *appearanceRepository) GetByOwner(ctx context.Context, ownerID string) (*model.Appearance, error) {
	var appearance model.Appearance
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&appearance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppearanceNotFound
		}
		return nil, err
	}
	return &appearance, nil
}

// Upsert creates the row on first write and updates it in place afterwards,
// keyed on the one-per-user constraint.
func (r *appearanceRepository) Upsert(ctx context.Context, appearance *model.Appearance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"theme", "background_color", "text_color", "button_style",
			"font", "show_avatar", "show_socials", "updated_at",
		}),
	}).Create(appearance).Error
}
