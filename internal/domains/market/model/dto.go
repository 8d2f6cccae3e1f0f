package model

import (
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateMarketRequest binds from JSON or from a multipart form.
// In forms the schedule travels as a JSON string in the "schedule" field.
type CreateMarketRequest struct {
	Name             string    `json:"name" form:"name"`
	Description      *string   `json:"description" form:"description"`
	Address          string    `json:"address" form:"address"`
	Province         string    `json:"province" form:"province"`
	Municipality     string    `json:"municipality" form:"municipality"`
	Latitude         *float64  `json:"latitude" form:"latitude"`
	Longitude        *float64  `json:"longitude" form:"longitude"`
	LegalBeneficiary *string   `json:"legalBeneficiary" form:"legalBeneficiary"`
	BelongsToSAS     *bool     `json:"belongsToSas" form:"belongsToSas"`
	Schedule         *Schedule `json:"schedule" form:"-"`
	ScheduleJSON     string    `json:"-" form:"schedule"`
}

func (r *CreateMarketRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Province = strings.TrimSpace(r.Province)
	r.Municipality = strings.TrimSpace(r.Municipality)
	r.Description = trim(r.Description)
	r.LegalBeneficiary = trim(r.LegalBeneficiary)
	return decodeSchedule(&r.Schedule, r.ScheduleJSON)
}

func (r CreateMarketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 160)),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.Province, validation.Required, validation.RuneLength(1, 80)),
		validation.Field(&r.Municipality, validation.Required, validation.RuneLength(1, 80)),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// UpdateMarketRequest: nil fields keep their stored value
type UpdateMarketRequest struct {
	Name             *string   `json:"name" form:"name"`
	Description      *string   `json:"description" form:"description"`
	Address          *string   `json:"address" form:"address"`
	Province         *string   `json:"province" form:"province"`
	Municipality     *string   `json:"municipality" form:"municipality"`
	Latitude         *float64  `json:"latitude" form:"latitude"`
	Longitude        *float64  `json:"longitude" form:"longitude"`
	LegalBeneficiary *string   `json:"legalBeneficiary" form:"legalBeneficiary"`
	BelongsToSAS     *bool     `json:"belongsToSas" form:"belongsToSas"`
	Schedule         *Schedule `json:"schedule" form:"-"`
	ScheduleJSON     string    `json:"-" form:"schedule"`
}

func (r *UpdateMarketRequest) Normalize() error {
	for _, p := range []*string{r.Name, r.Address, r.Province, r.Municipality} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
	if r.LegalBeneficiary != nil {
		b := strings.TrimSpace(*r.LegalBeneficiary)
		r.LegalBeneficiary = &b
	}
	return decodeSchedule(&r.Schedule, r.ScheduleJSON)
}

func (r UpdateMarketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 160)),
		validation.Field(&r.Address, validation.NilOrNotEmpty),
		validation.Field(&r.Province, validation.NilOrNotEmpty, validation.RuneLength(1, 80)),
		validation.Field(&r.Municipality, validation.NilOrNotEmpty, validation.RuneLength(1, 80)),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// Apply copies the set fields onto m
func (r UpdateMarketRequest) Apply(m *Market) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		m.Description = emptyToNil(*r.Description)
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.Province != nil {
		m.Province = *r.Province
	}
	if r.Municipality != nil {
		m.Municipality = *r.Municipality
	}
	if r.Latitude != nil {
		m.Latitude = r.Latitude
	}
	if r.Longitude != nil {
		m.Longitude = r.Longitude
	}
	if r.LegalBeneficiary != nil {
		m.LegalBeneficiary = emptyToNil(*r.LegalBeneficiary)
	}
	if r.BelongsToSAS != nil {
		m.BelongsToSAS = *r.BelongsToSAS
	}
	if r.Schedule != nil {
		m.Schedule = r.Schedule
	}
}

func decodeSchedule(dst **Schedule, raw string) error {
	raw = strings.TrimSpace(raw)
	if *dst != nil || raw == "" || raw == "null" {
		return nil
	}
	var s Schedule
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return err
	}
	*dst = &s
	return nil
}

func trim(s *string) *string {
	if s == nil {
		return nil
	}
	return emptyToNil(strings.TrimSpace(*s))
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
