package model

import (
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest binds from JSON or a multipart form. Decimal fields
// arrive as text in forms and are parsed by Normalize.
type CreateProductRequest struct {
	Name         string           `json:"name" form:"name"`
	Description  *string          `json:"description" form:"description"`
	Quantity     *decimal.Decimal `json:"quantity" form:"-"`
	QuantityText string           `json:"-" form:"quantity"`
	Unit         string           `json:"unit" form:"unit"`
	CategoryID   string           `json:"categoryId" form:"categoryId"`
	ProductType  *string          `json:"productType" form:"productType"`
	Price        *decimal.Decimal `json:"price" form:"-"`
	PriceText    string           `json:"-" form:"price"`
	PriceUnit    string           `json:"priceUnit" form:"priceUnit"`
	Status       string           `json:"status" form:"status"`
	// MarketID may be omitted by managers, who then add to their own market
	MarketID string `json:"marketId" form:"marketId"`
}

func (r *CreateProductRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Unit = strings.TrimSpace(r.Unit)
	r.PriceUnit = strings.TrimSpace(r.PriceUnit)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.MarketID = strings.TrimSpace(r.MarketID)
	r.Description = trimToNil(r.Description)
	r.ProductType = trimToNil(r.ProductType)

	if r.Unit == "" {
		r.Unit = DefaultUnit
	}
	if r.PriceUnit == "" {
		r.PriceUnit = DefaultUnit
	}

	var err error
	if r.Quantity, err = decimalOrText(r.Quantity, r.QuantityText); err != nil {
		return err
	}
	r.Price, err = decimalOrText(r.Price, r.PriceText)
	return err
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 160)),
		validation.Field(&r.CategoryID, validation.Required, is.UUID),
		validation.Field(&r.MarketID, is.UUID),
		validation.Field(&r.Unit, validation.RuneLength(1, 30)),
		validation.Field(&r.PriceUnit, validation.RuneLength(1, 30)),
		validation.Field(&r.Quantity, validation.By(nonNegative)),
		validation.Field(&r.Price, validation.By(nonNegative)),
	)
}

// UpdateProductRequest: nil fields keep their stored value.
// ExistingImages lists the stored images to keep; new uploads are appended to it.
type UpdateProductRequest struct {
	Name               *string          `json:"name" form:"name"`
	Description        *string          `json:"description" form:"description"`
	Quantity           *decimal.Decimal `json:"quantity" form:"-"`
	QuantityText       string           `json:"-" form:"quantity"`
	Unit               *string          `json:"unit" form:"unit"`
	CategoryID         *string          `json:"categoryId" form:"categoryId"`
	ProductType        *string          `json:"productType" form:"productType"`
	Price              *decimal.Decimal `json:"price" form:"-"`
	PriceText          string           `json:"-" form:"price"`
	PriceUnit          *string          `json:"priceUnit" form:"priceUnit"`
	Status             *string          `json:"status" form:"status"`
	ExistingImages     *[]string        `json:"existingImages" form:"-"`
	ExistingImagesText string           `json:"-" form:"existingImages"`
}

func (r *UpdateProductRequest) Normalize() error {
	for _, p := range []*string{r.Name, r.Unit, r.PriceUnit, r.CategoryID, r.Status} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}

	var err error
	if r.Quantity, err = decimalOrText(r.Quantity, r.QuantityText); err != nil {
		return err
	}
	if r.Price, err = decimalOrText(r.Price, r.PriceText); err != nil {
		return err
	}

	if r.ExistingImages == nil && strings.TrimSpace(r.ExistingImagesText) != "" {
		var keep []string
		if err := json.Unmarshal([]byte(r.ExistingImagesText), &keep); err != nil {
			return err
		}
		r.ExistingImages = &keep
	}
	return nil
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 160)),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&r.Unit, validation.NilOrNotEmpty, validation.RuneLength(1, 30)),
		validation.Field(&r.PriceUnit, validation.NilOrNotEmpty, validation.RuneLength(1, 30)),
		validation.Field(&r.Quantity, validation.By(nonNegative)),
		validation.Field(&r.Price, validation.By(nonNegative)),
	)
}

// Apply copies the plain fields onto p. Category, status and images are
// resolved by the service.
func (r UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = trimToNil(r.Description)
	}
	if r.Quantity != nil {
		p.Quantity = r.Quantity
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.ProductType != nil {
		p.ProductType = trimToNil(r.ProductType)
	}
	if r.Price != nil {
		p.Price = r.Price
	}
	if r.PriceUnit != nil {
		p.PriceUnit = *r.PriceUnit
	}
}

// ParseID reads an optional uuid that already passed validation
func ParseID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func decimalOrText(current *decimal.Decimal, text string) (*decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if current != nil || text == "" {
		return current, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nonNegative(value interface{}) error {
	d, _ := value.(*decimal.Decimal)
	if d != nil && d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
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
