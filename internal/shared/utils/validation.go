package utils

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// RequiredUUID rejects uuid.Nil.
// validation.Required and validation.NotIn see a uuid.UUID through its
// driver.Valuer string form, so they never match the zero value.
func RequiredUUID(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		switch id := value.(type) {
		case uuid.UUID:
			if id == uuid.Nil {
				return errors.New(message)
			}
		case *uuid.UUID:
			if id == nil || *id == uuid.Nil {
				return errors.New(message)
			}
		}
		return nil
	})
}
