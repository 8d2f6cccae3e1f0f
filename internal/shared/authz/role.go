package authz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role is the closed set of user roles
type Role string

const (
	RoleRegular Role = "REGULAR"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// Parse accepts a role name in any case. "GESTOR" is the legacy name of MANAGER.
func Parse(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REGULAR":
		return RoleRegular, nil
	case "MANAGER", "GESTOR":
		return RoleManager, nil
	case "ADMIN":
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleRegular || r == RoleManager || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

// Actor is the authenticated caller of an operation
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanModifyComment: the author or an admin may edit or delete a comment.
func CanModifyComment(a Actor, authorID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == authorID
}

// CanDeleteRating: only the author removes their rating.
func CanDeleteRating(a Actor, authorID uuid.UUID) bool {
	return a.ID == authorID
}

// CanManageMarkets: managers and admins may create markets and products.
func CanManageMarkets(a Actor) bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}

func CanModifyMarket(a Actor, managerID uuid.UUID) bool {
	return a.IsAdmin() || (a.Role == RoleManager && a.ID == managerID)
}

func CanDeleteMarket(a Actor) bool {
	return a.IsAdmin()
}

// CanModifyProduct checks against the manager of the product's market.
func CanModifyProduct(a Actor, marketManagerID uuid.UUID) bool {
	return CanModifyMarket(a, marketManagerID)
}

func CanAdminister(a Actor) bool {
	return a.IsAdmin()
}
