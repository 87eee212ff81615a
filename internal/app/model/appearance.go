package model

import "time"

// Appearance holds the theming settings for a user's page, at most one row per user.
type Appearance struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	UserID          string    `json:"user_id" gorm:"uniqueIndex;size:36;not null"`
	Theme           string    `json:"theme" gorm:"size:64;not null;default:default"`
	BackgroundColor string    `json:"background_color" gorm:"size:16"`
	TextColor       string    `json:"text_color" gorm:"size:16"`
	ButtonStyle     string    `json:"button_style" gorm:"size:32"`
	Font            string    `json:"font" gorm:"size:64"`
	ShowAvatar      bool      `json:"show_avatar" gorm:"not null;default:true"`
	ShowSocials     bool      `json:"show_socials" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
