package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/renttax/internal/model"
)

// LedgerService validates input and forwards CRUD calls to the store.
type LedgerService struct {
	store Store
	log   zerolog.Logger
}

type PropertyInput struct {
	Name         string
	Address      string
	Category     model.PropertyCategory
	BaseRentRate decimal.Decimal
}

type ContractInput struct {
	PropertyID      uuid.UUID
	TenantName      string
	StartDate       time.Time
	EndDate         time.Time
	RentAmount      decimal.Decimal
	PaymentSchedule string
}

type PaymentInput struct {
	ContractID uuid.UUID
	Amount     decimal.Decimal
	Date       time.Time
}

type ExpenseInput struct {
	PropertyID  uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Description string
}

func NewLedgerService(store Store, log zerolog.Logger) *LedgerService {
	return &LedgerService{store: store, log: log}
}

// Properties

func (s *LedgerService) CreateProperty(ctx context.Context, input PropertyInput) (*model.Property, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !input.Category.Valid() {
		return nil, invalid("unknown property category %q", input.Category)
	}
	if err := nonNegative("base_rent_rate", input.BaseRentRate); err != nil {
		return nil, err
	}

	property := &model.Property{
		Name:         name,
		Address:      strings.TrimSpace(input.Address),
		Category:     input.Category,
		BaseRentRate: input.BaseRentRate,
	}
	if err := s.store.CreateProperty(ctx, property); err != nil {
		return nil, classify(err)
	}
	return property, nil
}

func (s *LedgerService) GetProperty(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	property, err := s.store.GetProperty(ctx, id)
	return property, classify(err)
}

func (s *LedgerService) ListProperties(ctx context.Context) ([]model.Property, error) {
	rows, err := s.store.ListProperties(ctx)
	return rows, classify(err)
}

func (s *LedgerService) UpdateProperty(ctx context.Context, id uuid.UUID, patch model.PropertyPatch) (*model.Property, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		patch.Name = &name
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, invalid("unknown property category %q", *patch.Category)
	}
	if patch.BaseRentRate != nil {
		if err := nonNegative("base_rent_rate", *patch.BaseRentRate); err != nil {
			return nil, err
		}
	}
	property, err := s.store.UpdateProperty(ctx, id, patch)
	return property, classify(err)
}

func (s *LedgerService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProperty(ctx, id); err != nil {
		return classify(err)
	}
	s.log.Info().Str("property_id", id.String()).Msg("property deleted with its contracts, payments and expenses")
	return nil
}

// Contracts

func (s *LedgerService) CreateContract(ctx context.Context, input ContractInput) (*model.Contract, error) {
	if input.PropertyID == uuid.Nil {
		return nil, invalid("property_id is required")
	}
	tenant := strings.TrimSpace(input.TenantName)
	if tenant == "" {
		return nil, invalid("tenant_name is required")
	}
	if err := nonNegative("rent_amount", input.RentAmount); err != nil {
		return nil, err
	}
	start, end := dateOnly(input.StartDate), dateOnly(input.EndDate)
	if err := checkPeriod(start, end); err != nil {
		return nil, err
	}

	contract := &model.Contract{
		PropertyID:      input.PropertyID,
		TenantName:      tenant,
		StartDate:       start,
		EndDate:         end,
		RentAmount:      input.RentAmount,
		PaymentSchedule: strings.TrimSpace(input.PaymentSchedule),
	}
	if err := s.store.CreateContract(ctx, contract); err != nil {
		return nil, classify(err)
	}
	return contract, nil
}

func (s *LedgerService) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.store.GetContract(ctx, id)
	return contract, classify(err)
}

func (s *LedgerService) ListContracts(ctx context.Context, activeOnly bool) ([]model.Contract, error) {
	var (
		rows []model.Contract
		err  error
	)
	if activeOnly {
		rows, err = s.store.ListActiveContracts(ctx)
	} else {
		rows, err = s.store.ListContracts(ctx)
	}
	return rows, classify(err)
}

func (s *LedgerService) ListContractsByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Contract, error) {
	rows, err := s.store.ListContractsByProperty(ctx, propertyID)
	return rows, classify(err)
}

func (s *LedgerService) UpdateContract(ctx context.Context, id uuid.UUID, patch model.ContractPatch) (*model.Contract, error) {
	if patch.PropertyID != nil && *patch.PropertyID == uuid.Nil {
		return nil, invalid("property_id must not be empty")
	}
	if patch.TenantName != nil {
		tenant := strings.TrimSpace(*patch.TenantName)
		if tenant == "" {
			return nil, invalid("tenant_name must not be empty")
		}
		patch.TenantName = &tenant
	}
	if patch.RentAmount != nil {
		if err := nonNegative("rent_amount", *patch.RentAmount); err != nil {
			return nil, err
		}
	}
	patch.StartDate = dateOnlyPtr(patch.StartDate)
	patch.EndDate = dateOnlyPtr(patch.EndDate)

	if patch.StartDate != nil || patch.EndDate != nil {
		current, err := s.store.GetContract(ctx, id)
		if err != nil {
			return nil, classify(err)
		}
		start, end := current.StartDate, current.EndDate
		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if patch.EndDate != nil {
			end = *patch.EndDate
		}
		if err := checkPeriod(start, end); err != nil {
			return nil, err
		}
	}

	contract, err := s.store.UpdateContract(ctx, id, patch)
	return contract, classify(err)
}

func (s *LedgerService) DeleteContract(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteContract(ctx, id); err != nil {
		return classify(err)
	}
	s.log.Info().Str("contract_id", id.String()).Msg("contract deleted with its payments")
	return nil
}

// Payments

func (s *LedgerService) CreatePayment(ctx context.Context, input PaymentInput) (*model.Payment, error) {
	if input.ContractID == uuid.Nil {
		return nil, invalid("contract_id is required")
	}
	if err := nonNegative("amount", input.Amount); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, invalid("date is required")
	}

	payment := &model.Payment{
		ContractID: input.ContractID,
		Amount:     input.Amount,
		Date:       dateOnly(input.Date),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, classify(err)
	}
	return payment, nil
}

func (s *LedgerService) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.store.GetPayment(ctx, id)
	return payment, classify(err)
}

func (s *LedgerService) ListPayments(ctx context.Context) ([]model.Payment, error) {
	rows, err := s.store.ListPayments(ctx)
	return rows, classify(err)
}

func (s *LedgerService) ListPaymentsByContract(ctx context.Context, contractID uuid.UUID) ([]model.Payment, error) {
	rows, err := s.store.ListPaymentsByContract(ctx, contractID)
	return rows, classify(err)
}

func (s *LedgerService) ListRecentPayments(ctx context.Context, limit int) ([]model.Payment, error) {
	if limit <= 0 {
		return nil, invalid("limit must be positive")
	}
	rows, err := s.store.ListRecentPayments(ctx, limit)
	return rows, classify(err)
}

func (s *LedgerService) UpdatePayment(ctx context.Context, id uuid.UUID, patch model.PaymentPatch) (*model.Payment, error) {
	if patch.ContractID != nil && *patch.ContractID == uuid.Nil {
		return nil, invalid("contract_id must not be empty")
	}
	if patch.Amount != nil {
		if err := nonNegative("amount", *patch.Amount); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, invalid("date must not be empty")
	}
	patch.Date = dateOnlyPtr(patch.Date)

	payment, err := s.store.UpdatePayment(ctx, id, patch)
	return payment, classify(err)
}

func (s *LedgerService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return classify(s.store.DeletePayment(ctx, id))
}

// Expenses

func (s *LedgerService) CreateExpense(ctx context.Context, input ExpenseInput) (*model.Expense, error) {
	if input.PropertyID == uuid.Nil {
		return nil, invalid("property_id is required")
	}
	if err := nonNegative("amount", input.Amount); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, invalid("date is required")
	}

	expense := &model.Expense{
		PropertyID:  input.PropertyID,
		Amount:      input.Amount,
		Date:        dateOnly(input.Date),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, classify(err)
	}
	return expense, nil
}

func (s *LedgerService) GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	return expense, classify(err)
}

func (s *LedgerService) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.store.ListExpenses(ctx)
	return rows, classify(err)
}

func (s *LedgerService) ListExpensesByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Expense, error) {
	rows, err := s.store.ListExpensesByProperty(ctx, propertyID)
	return rows, classify(err)
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id uuid.UUID, patch model.ExpensePatch) (*model.Expense, error) {
	if patch.PropertyID != nil && *patch.PropertyID == uuid.Nil {
		return nil, invalid("property_id must not be empty")
	}
	if patch.Amount != nil {
		if err := nonNegative("amount", *patch.Amount); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, invalid("date must not be empty")
	}
	patch.Date = dateOnlyPtr(patch.Date)

	expense, err := s.store.UpdateExpense(ctx, id, patch)
	return expense, classify(err)
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return classify(s.store.DeleteExpense(ctx, id))
}

func nonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return nil
}

func checkPeriod(start, end time.Time) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return invalid("end_date must not be before start_date")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := dateOnly(*t)
	return &v
}
