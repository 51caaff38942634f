package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID  uuid.UUID       `json:"property_id" gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(18,2);not null"`
	Date        time.Time       `json:"date" gorm:"type:date;index"`
	Category    string          `json:"category" gorm:"size:64"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`

	Property *Property `json:"-" gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Expense) TableName() string { return "expenses" }

type ExpensePatch struct {
	PropertyID  *uuid.UUID
	Amount      *decimal.Decimal
	Date        *time.Time
	Category    *string
	Description *string
}

func (p ExpensePatch) Apply(dst *Expense) {
	if p.PropertyID != nil {
		dst.PropertyID = *p.PropertyID
	}
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
	if p.Date != nil {
		dst.Date = *p.Date
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
}
