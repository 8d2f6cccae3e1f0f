package model

import (
	"agromap-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type RateRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Stars     int       `json:"stars"`
}

func (r RateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, utils.RequiredUUID("product is required")),
	)
}

// ValidStars reports whether stars is within 1..5
func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}
