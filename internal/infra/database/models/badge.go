package models

import (
	"time"
)

type Badge struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Icon        string    `json:"icon,omitempty" gorm:"type:text"`
	Color       string    `json:"color,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"type:timestamp with time zone"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}

// UserBadge joins a badge to a user. The unique pair index makes a second
// award of the same badge fail with a duplicated-key error.
type UserBadge struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"userId" gorm:"type:text;index:user_badge_pair,unique"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	BadgeID   string    `json:"badgeId" gorm:"type:text;index:user_badge_pair,unique"`
	Badge     Badge     `json:"badge" gorm:"constraint:OnDelete:CASCADE;"`
	AwardedAt time.Time `json:"awardedAt" gorm:"type:timestamp with time zone"`
	AwardedBy string    `json:"awardedBy" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamp with time zone"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}
