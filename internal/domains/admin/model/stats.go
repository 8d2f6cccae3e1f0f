package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Stats struct {
	Users    UserStats    `json:"users"`
	Markets  Total        `json:"markets"`
	Products ProductStats `json:"products"`
	Comments Total        `json:"comments"`
}

type Total struct {
	Total int `json:"total"`
}

type UserStats struct {
	Total  int            `json:"total"`
	ByRole map[string]int `json:"byRole"`
}

type ProductStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

// ActivityLimit is how many rows of each kind the dashboard shows
const ActivityLimit = 5

type Activity struct {
	RecentMarkets  []MarketRow  `json:"recentMarkets"`
	RecentProducts []ProductRow `json:"recentProducts"`
	RecentComments []CommentRow `json:"recentComments"`
}

type Ref struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ManagerRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
}

type MarketRow struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Province     string     `json:"province"`
	Municipality string     `json:"municipality"`
	Manager      ManagerRef `json:"manager"`
	ProductCount int        `json:"productCount"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type ProductRow struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Status      string           `json:"status"`
	ProductType *string          `json:"productType"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        string           `json:"unit"`
	Price       *decimal.Decimal `json:"price"`
	PriceUnit   string           `json:"priceUnit"`
	Currency    string           `json:"currency"`
	Market      Ref              `json:"market"`
	ManagerName string           `json:"managerName"`
	Category    Ref              `json:"category"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type CommentRow struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Recommends bool      `json:"recommends"`
	Likes      int       `json:"likes"`
	User       Ref       `json:"user"`
	Product    Ref       `json:"product"`
	CreatedAt  time.Time `json:"createdAt"`
}
