package domain

import "time"

// BadgeAward is a badge as presented on a user's profile.
type BadgeAward struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	AwardedAt   time.Time `json:"awardedAt"`
	AwardedBy   string    `json:"awardedBy"`
}

// ProofSummary is the condensed proof representation used by the
// aggregated read views.
type ProofSummary struct {
	ID               string    `json:"id"`
	Title            *string   `json:"title"`
	Category         *string   `json:"category"`
	CreatedAt        time.Time `json:"createdAt"`
	CID              string    `json:"cid,omitempty"`
	BlockchainStatus string    `json:"blockchainStatus,omitempty"`
}

// EcoActor is a user with their badges and latest proofs, as served by
// the eco-actors listing.
type EcoActor struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Bio          string         `json:"bio,omitempty"`
	TotalProofs  int64          `json:"totalProofs"`
	TotalImpact  float64        `json:"totalImpact"`
	Badges       []BadgeAward   `json:"badges"`
	RecentProofs []ProofSummary `json:"recentProofs"`
}

// Profile is the detailed per-user view.
type Profile struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Avatar       string         `json:"avatar,omitempty"`
	Bio          string         `json:"bio,omitempty"`
	TotalProofs  int64          `json:"totalProofs"`
	TotalImpact  float64        `json:"totalImpact"`
	CreatedAt    time.Time      `json:"createdAt"`
	Badges       []BadgeAward   `json:"badges"`
	RecentProofs []ProofSummary `json:"recentProofs"`
}
