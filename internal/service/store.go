package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/renttax/internal/model"
)

// Store is the persistence contract shared by the gorm and bbolt engines.
type Store interface {
	CreateProperty(ctx context.Context, property *model.Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*model.Property, error)
	ListProperties(ctx context.Context) ([]model.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, patch model.PropertyPatch) (*model.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	CreateContract(ctx context.Context, contract *model.Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	ListContracts(ctx context.Context) ([]model.Contract, error)
	ListContractsByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Contract, error)
	ListActiveContracts(ctx context.Context) ([]model.Contract, error)
	UpdateContract(ctx context.Context, id uuid.UUID, patch model.ContractPatch) (*model.Contract, error)
	DeleteContract(ctx context.Context, id uuid.UUID) error

	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListPayments(ctx context.Context) ([]model.Payment, error)
	ListPaymentsByContract(ctx context.Context, contractID uuid.UUID) ([]model.Payment, error)
	ListRecentPayments(ctx context.Context, limit int) ([]model.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, patch model.PaymentPatch) (*model.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error

	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	ListExpensesByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, patch model.ExpensePatch) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
