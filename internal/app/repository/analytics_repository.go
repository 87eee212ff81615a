package repository

import (
	"context"

	"github.com/plinkhq/plink/internal/app/model"
	"gorm.io/gorm"
)

// LinkClickCount is one row of the grouped click aggregation.
type LinkClickCount struct {
	LinkID string
	Count  int64
}

// AnalyticsEventRepository defines the data access contract for the append-only
// event log. Events are never updated or deleted.
type AnalyticsEventRepository interface {
	Create(ctx context.Context, event *model.AnalyticsEvent) error
	CountClicks(ctx context.Context, ownerID string) (int64, error)
	CountViews(ctx context.Context, ownerID string) (int64, error)
	ClicksPerLink(ctx context.Context, ownerID string) ([]LinkClickCount, error)
}

type analyticsEventRepository struct {
	db *gorm.DB
}

// NewAnalyticsEventRepository returns a GORM-backed AnalyticsEventRepository.
func NewAnalyticsEventRepository(db *gorm.DB) AnalyticsEventRepository {
	return &analyticsEventRepository{db: db}
}

func (r *analyticsEventRepository) Create(ctx context.Context, event *model.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *analyticsEventRepository) CountClicks(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AnalyticsEvent{}).
		Where("user_id = ? AND link_id IS NOT NULL", ownerID).
		Count(&count).Error
	return count, err
}

func (r *analyticsEventRepository) CountViews(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AnalyticsEvent{}).
		Where("user_id = ? AND link_id IS NULL", ownerID).
		Count(&count).Error
	return count, err
}

func (r *analyticsEventRepository) ClicksPerLink(ctx context.Context, ownerID string) ([]LinkClickCount, error) {
	var rows []LinkClickCount
	err := r.db.WithContext(ctx).
		Model(&model.AnalyticsEvent{}).
		Select("link_id, COUNT(*) AS count").
		Where("user_id = ? AND link_id IS NOT NULL", ownerID).
		Group("link_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
