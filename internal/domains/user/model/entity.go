package model

import (
	"time"

	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Image        *string    `json:"image"`
	Role         authz.Role `json:"role"`
	Province     *string    `json:"province"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) Actor() authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role}
}

// UserWithCounts is the admin listing row
type UserWithCounts struct {
	User
	MarketCount  int `json:"marketCount"`
	CommentCount int `json:"commentCount"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
