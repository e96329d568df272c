package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/typeconv/registry"
)

// RatingSystem is a representative entity used by datastore tests.
type RatingSystem struct {
	ID          *string          `json:"ID,omitempty"`
	Name        *string          `json:"Name,omitempty"`
	Description *string          `json:"Description,omitempty"`
	CreatedAt   *strfmt.DateTime `json:"CreatedAt,omitempty"`
	UpdatedAt   *strfmt.DateTime `json:"UpdatedAt,omitempty"`
}

func init() {
	registry.RegisterAggregate[RatingSystem]("RatingSystem")
}
