package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ContractID uuid.UUID       `json:"contract_id" gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(18,2);not null"`
	Date       time.Time       `json:"date" gorm:"type:date;index"`
	CreatedAt  time.Time       `json:"created_at" gorm:"not null"`

	Contract *Contract `json:"-" gorm:"foreignKey:ContractID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Payment) TableName() string { return "payments" }

type PaymentPatch struct {
	ContractID *uuid.UUID
	Amount     *decimal.Decimal
	Date       *time.Time
}

func (p PaymentPatch) Apply(dst *Payment) {
	if p.ContractID != nil {
		dst.ContractID = *p.ContractID
	}
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
	if p.Date != nil {
		dst.Date = *p.Date
	}
}
