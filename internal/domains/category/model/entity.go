package model

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryWithCounts is a category with how many rows reference it
type CategoryWithCounts struct {
	Category
	ProductCount  int `json:"productCount"`
	TemplateCount int `json:"templateCount"`
}

// InUse reports whether products or templates still point at the category
func (c CategoryWithCounts) InUse() bool {
	return c.ProductCount > 0 || c.TemplateCount > 0
}
