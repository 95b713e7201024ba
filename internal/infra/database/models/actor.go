package models

import (
	"time"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text"`
	Email         string    `json:"email" gorm:"type:text;uniqueIndex"`
	Name          string    `json:"name" gorm:"type:text"`
	Avatar        string    `json:"avatar,omitempty" gorm:"type:text"`
	Bio           string    `json:"bio,omitempty" gorm:"type:text"`
	WalletAddress string    `json:"walletAddress,omitempty" gorm:"type:text"`
	TotalProofs   int64     `json:"totalProofs" gorm:"not null;default:0"`
	TotalImpact   float64   `json:"totalImpact" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt" gorm:"type:timestamp with time zone"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}

type NGO struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Logo         string    `json:"logo,omitempty" gorm:"type:text"`
	Website      string    `json:"website,omitempty" gorm:"type:text"`
	Email        string    `json:"email,omitempty" gorm:"type:text"`
	Phone        string    `json:"phone,omitempty" gorm:"type:text"`
	Address      string    `json:"address,omitempty" gorm:"type:text"`
	IsVerified   bool      `json:"isVerified" gorm:"not null;default:false"`
	TotalProofs  int64     `json:"totalProofs" gorm:"not null;default:0"`
	TotalMembers int64     `json:"totalMembers" gorm:"not null;default:0"`
	TotalImpact  float64   `json:"totalImpact" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt" gorm:"type:timestamp with time zone"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`

	Members []NGOMember `json:"members,omitempty" gorm:"foreignKey:NGOID"`
	Proofs  []Proof     `json:"proofs,omitempty" gorm:"foreignKey:NGOID"`
}

func (NGO) TableName() string { return "ngos" }

type NGOMember struct {
	ID       string    `json:"id" gorm:"primaryKey;type:text"`
	UserID   string    `json:"userId" gorm:"type:text;index:ngo_member_pair,unique"`
	User     User      `json:"user" gorm:"constraint:OnDelete:CASCADE;"`
	NGOID    string    `json:"ngoId" gorm:"column:ngo_id;type:text;index:ngo_member_pair,unique"`
	NGO      NGO       `json:"-" gorm:"foreignKey:NGOID;constraint:OnDelete:CASCADE;"`
	Role     string    `json:"role" gorm:"type:text;not null;default:'member'"`
	JoinedAt time.Time `json:"joinedAt" gorm:"type:timestamp with time zone"`
}

func (NGOMember) TableName() string { return "ngo_members" }
