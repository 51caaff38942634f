package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dashboard struct {
	Regime           Regime     `json:"regime"`
	PropertyCount    int        `json:"property_count"`
	ContractCount    int        `json:"contract_count"`
	ActiveContracts  int        `json:"active_contracts"`
	Totals           TaxResult  `json:"totals"`
	RecentPayments   []Payment  `json:"recent_payments"`
	UpcomingPayments []Contract `json:"upcoming_payments"`
}

type MonthlyBucket struct {
	Month    time.Time       `json:"month"` // first day of the month, UTC
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Snapshot is the full export document.
type Snapshot struct {
	Properties []Property `json:"properties"`
	Contracts  []Contract `json:"contracts"`
	Payments   []Payment  `json:"payments"`
	Expenses   []Expense  `json:"expenses"`
	ExportDate time.Time  `json:"export_date"`
}
