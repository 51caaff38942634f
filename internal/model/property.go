package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PropertyCategory string

const (
	PropertyCategoryApartment  PropertyCategory = "apartment"
	PropertyCategoryHouse      PropertyCategory = "house"
	PropertyCategoryRoom       PropertyCategory = "room"
	PropertyCategoryCommercial PropertyCategory = "commercial"
)

func (c PropertyCategory) Valid() bool {
	switch c {
	case PropertyCategoryApartment, PropertyCategoryHouse, PropertyCategoryRoom, PropertyCategoryCommercial:
		return true
	default:
		return false
	}
}

type Property struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string           `json:"name" gorm:"not null"`
	Address      string           `json:"address"`
	Category     PropertyCategory `json:"category" gorm:"size:32;not null"`
	BaseRentRate decimal.Decimal  `json:"base_rent_rate" gorm:"type:numeric(18,2);not null"`
	CreatedAt    time.Time        `json:"created_at" gorm:"not null"`
}

func (Property) TableName() string { return "properties" }

// PropertyPatch carries the fields of an update; nil fields keep their stored value.
type PropertyPatch struct {
	Name         *string
	Address      *string
	Category     *PropertyCategory
	BaseRentRate *decimal.Decimal
}

func (p PropertyPatch) Apply(dst *Property) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.BaseRentRate != nil {
		dst.BaseRentRate = *p.BaseRentRate
	}
}
