package model

import "time"

// AnalyticsEvent is an append-only fact: a link click when LinkID is set,
// a profile view when it is nil. Rows are never updated or deleted.
type AnalyticsEvent struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;size:36;not null"`
	LinkID    *string   `json:"link_id,omitempty" gorm:"index;size:36"`
	IP        string    `json:"ip" gorm:"size:64"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ViewEvent is the wire shape published to JetStream for profile views.
type ViewEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ViewStreamName     = "PROFILE_VIEWS"
	ViewStreamSubject  = "views.events"
	ViewConsumerName   = "view-logger"
	ViewStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
