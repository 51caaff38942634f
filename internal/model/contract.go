package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Contract struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	PropertyID      uuid.UUID       `json:"property_id" gorm:"type:uuid;not null;index"`
	TenantName      string          `json:"tenant_name" gorm:"not null"`
	StartDate       time.Time       `json:"start_date" gorm:"type:date"`
	EndDate         time.Time       `json:"end_date" gorm:"type:date;index"`
	RentAmount      decimal.Decimal `json:"rent_amount" gorm:"type:numeric(18,2);not null"`
	PaymentSchedule string          `json:"payment_schedule"` // e.g. "monthly", "quarterly"
	IsActive        bool            `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null"`

	Property *Property `json:"-" gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Contract) TableName() string { return "contracts" }

type ContractPatch struct {
	PropertyID      *uuid.UUID
	TenantName      *string
	StartDate       *time.Time
	EndDate         *time.Time
	RentAmount      *decimal.Decimal
	PaymentSchedule *string
	IsActive        *bool
}

func (p ContractPatch) Apply(dst *Contract) {
	if p.PropertyID != nil {
		dst.PropertyID = *p.PropertyID
	}
	if p.TenantName != nil {
		dst.TenantName = *p.TenantName
	}
	if p.StartDate != nil {
		dst.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		dst.EndDate = *p.EndDate
	}
	if p.RentAmount != nil {
		dst.RentAmount = *p.RentAmount
	}
	if p.PaymentSchedule != nil {
		dst.PaymentSchedule = *p.PaymentSchedule
	}
	if p.IsActive != nil {
		dst.IsActive = *p.IsActive
	}
}
