package model

import (
	"strings"
	"time"

	ratingModel "agromap-backend/internal/domains/rating/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the availability of a product at its market
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
)

// ParseStatus accepts either case; "" parses to AVAILABLE
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case "", StatusAvailable:
		return StatusAvailable, true
	case StatusUnavailable:
		return StatusUnavailable, true
	default:
		return "", false
	}
}

const (
	DefaultUnit     = "UNIDAD"
	DefaultCurrency = "CUP"
)

type Product struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        string           `json:"unit"`
	Images      []string         `json:"images"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	ProductType *string          `json:"productType"`
	Price       *decimal.Decimal `json:"price"`
	PriceUnit   string           `json:"priceUnit"`
	Currency    string           `json:"currency"`
	Status      Status           `json:"status"`
	MarketID    uuid.UUID        `json:"marketId"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type MarketRef struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Province     string    `json:"province"`
	Municipality string    `json:"municipality"`
}

type ManagerRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProductListItem struct {
	Product
	Market   MarketRef   `json:"market"`
	Category CategoryRef `json:"category"`
}

type MarketWithManager struct {
	MarketRef
	Manager ManagerRef `json:"manager"`
}

// ProductDetail is the product page: market and manager, category and rating summary
type ProductDetail struct {
	Product
	Market   MarketWithManager   `json:"market"`
	Category CategoryRef         `json:"category"`
	Ratings  ratingModel.Summary `json:"ratings"`
}

type ListFilter struct {
	Province    *string
	CategoryID  *uuid.UUID
	ProductType *string
	Status      *Status
	MarketID    *uuid.UUID
}
