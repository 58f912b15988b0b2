package items

import (
	"time"

	"dgw/pkg/tier"
)

type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	CategoryID     *string   `json:"category_id,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	ReservePrice   *float64  `json:"reserve_price,omitempty"`
	PriceOnRequest bool      `json:"price_on_request"`
	Condition      *string   `json:"condition,omitempty"`
	Provenance     *string   `json:"provenance,omitempty"`
	OfferTier      *string   `json:"offer_tier,omitempty"`
	IsFeatured     bool      `json:"is_featured"`
	IsSold         bool      `json:"is_sold"`
	IsActive       bool      `json:"is_active"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// EffectiveTier is computed, never stored; see pkg/tier.
	EffectiveTier tier.Tier `json:"effective_tier,omitempty"`

	Images []ItemImage `json:"images,omitempty"`
}

type ItemImage struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	ImageURL     string    `json:"image_url"`
	AltText      *string   `json:"alt_text,omitempty"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type ItemList struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
