package model

import "time"

// Link is one ordered call-to-action entry on a user's public page.
// Display order is ascending Position; ties resolve by CreatedAt then ID so
// reads stay deterministic even though positions are not unique-enforced.
type Link struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;size:36;not null"`
	Title     string    `json:"title" gorm:"size:256;not null"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	Icon      *string   `json:"icon,omitempty" gorm:"size:128"`
	Position  int       `json:"order" gorm:"column:position;not null;default:0"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
