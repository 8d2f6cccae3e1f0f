package utils

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type uuidHolder struct {
	ID  uuid.UUID
	Ptr *uuid.UUID
}

func (h uuidHolder) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.ID, RequiredUUID("id is required")),
		validation.Field(&h.Ptr, RequiredUUID("ptr is required")),
	)
}

func TestRequiredUUID(t *testing.T) {
	id := uuid.New()
	assert.NoError(t, uuidHolder{ID: id, Ptr: &id}.Validate())

	err := uuidHolder{Ptr: &id}.Validate()
	assert.ErrorContains(t, err, "id is required")

	nilID := uuid.Nil
	err = uuidHolder{ID: id, Ptr: &nilID}.Validate()
	assert.ErrorContains(t, err, "ptr is required")

	err = uuidHolder{ID: id}.Validate()
	assert.ErrorContains(t, err, "ptr is required")
}
