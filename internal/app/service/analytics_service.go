package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/infra/prometheus"
)

var (
	ErrMissingOwner = errors.New("user id is required")
	ErrMissingLink  = errors.New("link id is required")
)

// topLinksLimit bounds the ranked summary.
const topLinksLimit = 10

// Summary is the aggregated view of a user's event log.
type Summary struct {
	TotalClicks  int64        `json:"total_clicks"`
	ProfileViews int64        `json:"profile_views"`
	TopLinks     []LinkClicks `json:"top_links"`
}

// LinkClicks is one entry of the ranked per-link click report.
type LinkClicks struct {
	LinkID string `json:"link_id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Clicks int64  `json:"clicks"`
}

// AnalyticsService turns the append-only event log into a bounded ranked
// summary and records click events.
type AnalyticsService interface {
	Summarize(ctx context.Context, ownerID string) (*Summary, error)
	RecordClick(ctx context.Context, ownerID, linkID, ip, userAgent string) error
}

type analyticsService struct {
	events repository.AnalyticsEventRepository
	links  repository.LinkRepository
}

// NewAnalyticsService returns a service backed by the given repositories.
func NewAnalyticsService(events repository.AnalyticsEventRepository, links repository.LinkRepository) AnalyticsService {
	return &analyticsService{events: events, links: links}
}

// Summarize is a pure read. Every owned link appears in the ranking (zero-fill),
// sorted descending by clicks with ties keeping the owner's list order, cut at
// topLinksLimit entries.
func (s *analyticsService) Summarize(ctx context.Context, ownerID string) (*Summary, error) {
	totalClicks, err := s.events.CountClicks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count clicks: %w", err)
	}

	profileViews, err := s.events.CountViews(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	perLink, err := s.events.ClicksPerLink(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("group clicks: %w", err)
	}
	clicksByID := make(map[string]int64, len(perLink))
	for _, row := range perLink {
		clicksByID[row.LinkID] = row.Count
	}

	links, err := s.links.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	top := make([]LinkClicks, 0, len(links))
	for _, link := range links {
		top = append(top, LinkClicks{
			LinkID: link.ID,
			Title:  link.Title,
			URL:    link.URL,
			Clicks: clicksByID[link.ID],
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Clicks > top[j].Clicks
	})
	if len(top) > topLinksLimit {
		top = top[:topLinksLimit]
	}

	return &Summary{
		TotalClicks:  totalClicks,
		ProfileViews: profileViews,
		TopLinks:     top,
	}, nil
}

// RecordClick appends one click event. The link must belong to the owner;
// a mismatch surfaces as not-found so the counter cannot be polluted with
// events attributed to the wrong link.
func (s *analyticsService) RecordClick(ctx context.Context, ownerID, linkID, ip, userAgent string) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	if linkID == "" {
		return ErrMissingLink
	}

	if _, err := s.links.GetByID(ctx, ownerID, linkID); err != nil {
		return fmt.Errorf("verify link ownership: %w", err)
	}

	event := &model.AnalyticsEvent{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		LinkID:    &linkID,
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("record click: %w", err)
	}

	prometheus.ClicksRecorded.Inc()
	return nil
}
