package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MinPasswordLength = 6

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// RegisterRequest binds from JSON or a multipart form with an optional "image" file
type RegisterRequest struct {
	Name     string  `json:"name" form:"name"`
	Username string  `json:"username" form:"username"`
	Password string  `json:"password" form:"password"`
	Province *string `json:"province" form:"province"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.Province = trimToNil(r.Province)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 120)),
		validation.Field(&r.Username, validation.Required, validation.RuneLength(3, 60),
			validation.Match(usernamePattern).Error("may only contain letters, digits, '_', '.' and '-'")),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(MinPasswordLength, 72)),
		validation.Field(&r.Province, validation.NilOrNotEmpty, validation.RuneLength(1, 80)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfileRequest changes the caller's own profile. Setting NewPassword
// requires CurrentPassword.
type UpdateProfileRequest struct {
	Name            *string `json:"name" form:"name"`
	Province        *string `json:"province" form:"province"`
	CurrentPassword string  `json:"currentPassword" form:"currentPassword"`
	NewPassword     string  `json:"newPassword" form:"newPassword"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 120)),
		validation.Field(&r.NewPassword, validation.RuneLength(MinPasswordLength, 72)),
	)
}

// Apply copies name and province. A blank province clears it.
func (r UpdateProfileRequest) Apply(u *User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Province != nil {
		u.Province = trimToNil(r.Province)
	}
}

// CreateUserRequest is the admin variant of registration with an explicit role
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" form:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
