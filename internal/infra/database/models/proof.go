package models

import (
	"time"

	"gorm.io/datatypes"
)

type Proof struct {
	ID           string `json:"id" gorm:"primaryKey;type:text"`
	CID          string `json:"cid" gorm:"column:cid;type:text;not null"`
	OriginalName string `json:"originalName" gorm:"type:text"`
	Size         int64  `json:"size"`
	MimeType     string `json:"type" gorm:"type:text"`
	URL          string `json:"url" gorm:"type:text"`
	ProofHash    string `json:"proofHash" gorm:"type:text;index"`

	TopicID          *string `json:"topicId" gorm:"type:text"`
	SequenceNumber   *uint64 `json:"sequenceNumber"`
	BlockchainStatus string  `json:"blockchainStatus" gorm:"type:text;not null"`

	Title    *string                    `json:"title" gorm:"type:text"`
	Category *string                    `json:"category" gorm:"type:text;index"`
	Location *string                    `json:"location" gorm:"type:text"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`

	AIValidationStatus   string                      `json:"aiValidationStatus" gorm:"type:text;not null;default:'not_applicable'"`
	AIConfidenceScore    *float64                    `json:"aiConfidenceScore"`
	AIEnvironmentalScore *float64                    `json:"aiEnvironmentalScore"`
	AISafetyScore        *float64                    `json:"aiSafetyScore"`
	AIDetectedObjects    datatypes.JSONSlice[string] `json:"aiDetectedObjects"`
	AIDetectedLabels     datatypes.JSONSlice[string] `json:"aiDetectedLabels"`
	AITextContent        datatypes.JSONSlice[string] `json:"aiTextContent"`
	AISuggestedCategory  *string                     `json:"aiSuggestedCategory" gorm:"type:text"`

	UserID *string `json:"userId" gorm:"type:text;index"`
	User   *User   `json:"user,omitempty" gorm:"constraint:OnDelete:SET NULL;"`
	NGOID  *string `json:"ngoId" gorm:"column:ngo_id;type:text;index"`
	NGO    *NGO    `json:"ngo,omitempty" gorm:"foreignKey:NGOID;constraint:OnDelete:SET NULL;"`

	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamp with time zone;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text;uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Icon        string    `json:"icon,omitempty" gorm:"type:text"`
	Color       string    `json:"color,omitempty" gorm:"type:text"`
	TotalProofs int64     `json:"totalProofs" gorm:"not null;default:0"`
	TotalImpact float64   `json:"totalImpact" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"type:timestamp with time zone"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"type:timestamp with time zone"`
}
