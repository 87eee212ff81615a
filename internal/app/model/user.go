package model

import "time"

// User is the identity anchor every other entity hangs off. Rows originate from
// the external identity provider; the server upserts on first sight.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	DisplayName string    `json:"display_name" gorm:"size:128"`
	Bio         string    `json:"bio" gorm:"type:text"`
	AvatarURL   string    `json:"avatar_url" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
