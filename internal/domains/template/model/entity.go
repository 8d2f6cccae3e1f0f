package model

import (
	"time"

	"github.com/google/uuid"
)

// Template is a catalogue entry managers copy when listing a new product
type Template struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Image       *string     `json:"image"`
	CategoryID  uuid.UUID   `json:"categoryId"`
	Category    CategoryRef `json:"category"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ListFilter struct {
	CategoryID *uuid.UUID
}
