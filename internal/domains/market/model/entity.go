package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Market struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	Address          string    `json:"address"`
	Province         string    `json:"province"`
	Municipality     string    `json:"municipality"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	Images           []string  `json:"images"`
	LegalBeneficiary *string   `json:"legalBeneficiary"`
	Schedule         *Schedule `json:"schedule"`
	BelongsToSAS     bool      `json:"belongsToSas"`
	ManagerID        uuid.UUID `json:"managerId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Manager struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
}

// ProductRef is the compact product shown in market listings
type ProductRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
}

// ProductSummary is a market's product as shown on the market page
type ProductSummary struct {
	ProductRef
	Images      []string         `json:"images"`
	ProductType *string          `json:"productType"`
	Price       *decimal.Decimal `json:"price"`
	PriceUnit   *string          `json:"priceUnit"`
	Currency    string           `json:"currency"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        *string          `json:"unit"`
}

// MarketListItem is one row of the public market list
type MarketListItem struct {
	Market
	Manager  Manager      `json:"manager"`
	Products []ProductRef `json:"products"`
}

// MarketDetail is a market with its manager, products and current opening status
type MarketDetail struct {
	Market
	Manager  Manager          `json:"manager"`
	Products []ProductSummary `json:"products"`
	Status   Status           `json:"status"`
}

// ListFilter narrows the public market list
type ListFilter struct {
	Province     *string
	Municipality *string
}
