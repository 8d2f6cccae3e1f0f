package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateTemplateRequest binds from JSON or a multipart form with an optional "image" file
type CreateTemplateRequest struct {
	Name        string  `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	CategoryID  string  `json:"categoryId" form:"categoryId"`
}

func (r *CreateTemplateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.Description = trimToNil(r.Description)
}

func (r CreateTemplateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 160)),
		validation.Field(&r.CategoryID, validation.Required, is.UUID),
	)
}

type UpdateTemplateRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	CategoryID  *string `json:"categoryId" form:"categoryId"`
}

func (r *UpdateTemplateRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.CategoryID != nil {
		id := strings.TrimSpace(*r.CategoryID)
		r.CategoryID = &id
	}
}

func (r UpdateTemplateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 160)),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty, is.UUID),
	)
}

// Apply copies the set fields. Validate must have passed.
func (r UpdateTemplateRequest) Apply(t *Template) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Description != nil {
		t.Description = trimToNil(r.Description)
	}
	if r.CategoryID != nil {
		t.CategoryID = uuid.MustParse(*r.CategoryID)
	}
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
