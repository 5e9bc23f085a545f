package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Promotion represents a provider-scoped discount promotion.
// Amount is the remaining usage count; it is decremented once per
// successful booking that references the promotion.
type Promotion struct {
	ID                 uuid.UUID `json:"_id" db:"id"`
	ProviderID         uuid.UUID `json:"provider" db:"provider_id"`
	Title              string    `json:"title" db:"title"`
	Description        string    `json:"description,omitempty" db:"description"`
	DiscountPercentage float64   `json:"discountPercentage" db:"discount_percentage"`
	MaxDiscountAmount  float64   `json:"maxDiscountAmount" db:"max_discount_amount"`
	MinPurchaseAmount  float64   `json:"minPurchaseAmount" db:"min_purchase_amount"`
	StartDate          time.Time `json:"startDate" db:"start_date"`
	EndDate            time.Time `json:"endDate" db:"end_date"`
	Amount             int       `json:"amount" db:"amount"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// ActiveAt reports whether the promotion window contains the given time
func (p *Promotion) ActiveAt(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// CreatePromotionRequest represents the request to create a promotion
type CreatePromotionRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	DiscountPercentage float64    `json:"discountPercentage"`
	MaxDiscountAmount  float64    `json:"maxDiscountAmount"`
	MinPurchaseAmount  float64    `json:"minPurchaseAmount"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	Amount             int        `json:"amount"`
}

// Validate validates the create promotion request
func (r *CreatePromotionRequest) Validate() error {
	if r.Title == "" || r.DiscountPercentage == 0 || r.StartDate == nil || r.EndDate == nil || r.Amount == 0 {
		return errors.New("Missing required fields")
	}
	if r.DiscountPercentage < 0 || r.DiscountPercentage > 100 {
		return errors.New("discountPercentage must be between 0 and 100")
	}
	return nil
}

// UpdatePromotionRequest represents the request to update a promotion
type UpdatePromotionRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	DiscountPercentage *float64   `json:"discountPercentage"`
	MaxDiscountAmount  *float64   `json:"maxDiscountAmount"`
	MinPurchaseAmount  *float64   `json:"minPurchaseAmount"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	Amount             *int       `json:"amount"`
}
