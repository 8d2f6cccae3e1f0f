package model

import (
	"strings"

	"agromap-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const maxTextLength = 2000

type CreateCommentRequest struct {
	ProductID  uuid.UUID `json:"productId"`
	Text       string    `json:"text"`
	Recommends *bool     `json:"recommends"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, utils.RequiredUUID("product is required")),
		validation.Field(&r.Text,
			validation.Required.Error("text is required"),
			validation.RuneLength(1, maxTextLength),
		),
	)
}

// RecommendsOrDefault: a comment recommends the product unless told otherwise
func (r CreateCommentRequest) RecommendsOrDefault() bool {
	if r.Recommends == nil {
		return true
	}
	return *r.Recommends
}

type UpdateCommentRequest struct {
	Text       *string `json:"text"`
	Recommends *bool   `json:"recommends"`
}

func (r *UpdateCommentRequest) Normalize() {
	if r.Text != nil {
		t := strings.TrimSpace(*r.Text)
		r.Text = &t
	}
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.NilOrNotEmpty.Error("text cannot be empty"), validation.RuneLength(1, maxTextLength)),
	)
}
