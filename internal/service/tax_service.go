package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/repository"
	"github.com/nurpe/renttax/internal/tax"
)

// SettingRegime is the settings key holding the selected regime.
const SettingRegime = "tax.regime"

// aggregateWorkers bounds concurrent per-property reads.
const aggregateWorkers = 4

// TaxService runs the tax engine against stored data and keeps the
// selected regime for the session.
type TaxService struct {
	store Store
	log   zerolog.Logger

	mu     sync.RWMutex
	regime model.Regime
}

// NewTaxService loads the persisted regime, falling back to def when
// nothing usable is stored.
func NewTaxService(ctx context.Context, store Store, def model.Regime, log zerolog.Logger) (*TaxService, error) {
	s := &TaxService{store: store, log: log, regime: def}

	raw, err := store.GetSetting(ctx, SettingRegime)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, classify(err)
	}

	regime, err := decodeRegime(raw)
	if err != nil {
		log.Warn().Str("value", raw).Msg("ignoring stored tax regime")
		return s, nil
	}
	s.regime = regime
	return s, nil
}

func (s *TaxService) Regime() model.Regime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regime
}

// SetRegime persists the regime first, so a storage failure leaves the
// session unchanged.
func (s *TaxService) SetRegime(ctx context.Context, regime model.Regime) error {
	parsed, err := model.ParseRegime(string(regime.Landlord), string(regime.Tenant))
	if err != nil {
		return invalid("unknown tax regime %s", regime)
	}
	regime = parsed

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.PutSetting(ctx, SettingRegime, regime.String()); err != nil {
		return classify(err)
	}
	s.regime = regime
	s.log.Info().Str("regime", regime.String()).Msg("tax regime changed")
	return nil
}

// Calculate is the pure flat calculation with input checks.
func (s *TaxService) Calculate(totalIncome, totalExpenses decimal.Decimal, regime model.Regime) (model.TaxResult, error) {
	if err := nonNegative("total_income", totalIncome); err != nil {
		return model.TaxResult{}, err
	}
	if err := nonNegative("total_expenses", totalExpenses); err != nil {
		return model.TaxResult{}, err
	}
	return tax.CalculateFlat(totalIncome, totalExpenses, regime), nil
}

func (s *TaxService) CalculateForProperty(ctx context.Context, propertyID uuid.UUID, regime model.Regime) (*model.PropertyTaxResult, error) {
	property, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, classify(err)
	}
	return s.calculateProperty(ctx, property, regime)
}

func (s *TaxService) calculateProperty(ctx context.Context, property *model.Property, regime model.Regime) (*model.PropertyTaxResult, error) {
	contracts, err := s.store.ListContractsByProperty(ctx, property.ID)
	if err != nil {
		return nil, classify(err)
	}
	expenses, err := s.store.ListExpensesByProperty(ctx, property.ID)
	if err != nil {
		return nil, classify(err)
	}
	return &model.PropertyTaxResult{
		PropertyID:   property.ID,
		PropertyName: property.Name,
		TaxResult:    tax.CalculateFlat(tax.ActiveIncome(contracts), tax.ExpenseTotal(expenses), regime),
	}, nil
}

// CalculateAllProperties returns one result per property in listing order.
func (s *TaxService) CalculateAllProperties(ctx context.Context, regime model.Regime) ([]model.PropertyTaxResult, error) {
	properties, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, classify(err)
	}

	results := make([]model.PropertyTaxResult, len(properties))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aggregateWorkers)
	for i := range properties {
		i := i
		g.Go(func() error {
			result, err := s.calculateProperty(gctx, &properties[i], regime)
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CalculateAggregate sums income and expenses over every property and
// applies the flat calculation once to the totals.
func (s *TaxService) CalculateAggregate(ctx context.Context, regime model.Regime) (model.TaxResult, error) {
	perProperty, err := s.CalculateAllProperties(ctx, regime)
	if err != nil {
		return model.TaxResult{}, err
	}
	income, expenses := decimal.Zero, decimal.Zero
	for _, r := range perProperty {
		income = income.Add(r.TotalIncome)
		expenses = expenses.Add(r.TotalExpenses)
	}
	return tax.CalculateFlat(income, expenses, regime), nil
}

func decodeRegime(raw string) (model.Regime, error) {
	landlord, tenant, _ := strings.Cut(raw, "/")
	return model.ParseRegime(landlord, tenant)
}
