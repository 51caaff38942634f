package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/renttax/internal/boltstore"
	"github.com/nurpe/renttax/internal/db"
	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/repository"
)

func newGormStore(t *testing.T) Store {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(db.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(database))
	return repository.NewStore(database)
}

func newBoltStore(t *testing.T) Store {
	t.Helper()
	store, err := boltstore.Open(filepath.Join(t.TempDir(), "renttax.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type ServiceSuite struct {
	suite.Suite
	open    func(t *testing.T) Store
	store   Store
	ledger  *LedgerService
	tax     *TaxService
	reports *ReportService
	ctx     context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
	log := zerolog.Nop()

	var err error
	s.ledger = NewLedgerService(s.store, log)
	s.tax, err = NewTaxService(s.ctx, s.store, model.DefaultRegime(), log)
	s.Require().NoError(err)
	s.reports = NewReportService(s.store, s.tax, log)
}

func TestServiceSuiteGorm(t *testing.T) {
	suite.Run(t, &ServiceSuite{open: newGormStore})
}

func TestServiceSuiteBolt(t *testing.T) {
	suite.Run(t, &ServiceSuite{open: newBoltStore})
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) property(name string) *model.Property {
	p, err := s.ledger.CreateProperty(s.ctx, PropertyInput{
		Name:         name,
		Category:     model.PropertyCategoryApartment,
		BaseRentRate: dec("30000"),
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) contract(propertyID uuid.UUID, rent string) *model.Contract {
	c, err := s.ledger.CreateContract(s.ctx, ContractInput{
		PropertyID: propertyID,
		TenantName: "Petrov",
		StartDate:  day(2025, 1, 1),
		EndDate:    day(2025, 12, 31),
		RentAmount: dec(rent),
	})
	s.Require().NoError(err)
	return c
}

func (s *ServiceSuite) expense(propertyID uuid.UUID, amount string, date time.Time) *model.Expense {
	e, err := s.ledger.CreateExpense(s.ctx, ExpenseInput{PropertyID: propertyID, Amount: dec(amount), Date: date})
	s.Require().NoError(err)
	return e
}

func (s *ServiceSuite) payment(contractID uuid.UUID, amount string, date time.Time) *model.Payment {
	p, err := s.ledger.CreatePayment(s.ctx, PaymentInput{ContractID: contractID, Amount: dec(amount), Date: date})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) assertResult(r model.TaxResult, income, expenses, rate, taxAmount, net string) {
	s.True(r.TotalIncome.Equal(dec(income)), "income %s", r.TotalIncome)
	s.True(r.TotalExpenses.Equal(dec(expenses)), "expenses %s", r.TotalExpenses)
	s.True(r.TaxRate.Equal(dec(rate)), "rate %s", r.TaxRate)
	s.True(r.TaxAmount.Equal(dec(taxAmount)), "tax %s", r.TaxAmount)
	s.True(r.NetProfit.Equal(dec(net)), "net %s", r.NetProfit)
}

func (s *ServiceSuite) TestValidation() {
	_, err := s.ledger.CreateProperty(s.ctx, PropertyInput{Name: " ", Category: model.PropertyCategoryHouse})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.ledger.CreateProperty(s.ctx, PropertyInput{Name: "Dacha", Category: "castle"})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.ledger.CreateProperty(s.ctx, PropertyInput{Name: "Dacha", Category: model.PropertyCategoryHouse, BaseRentRate: dec("-1")})
	s.ErrorIs(err, ErrInvalidInput)

	p := s.property("Loft")
	_, err = s.ledger.CreateContract(s.ctx, ContractInput{PropertyID: p.ID, TenantName: "Petrov", RentAmount: dec("-100")})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.ledger.CreateContract(s.ctx, ContractInput{
		PropertyID: p.ID,
		TenantName: "Petrov",
		StartDate:  day(2025, 6, 1),
		EndDate:    day(2025, 1, 1),
		RentAmount: dec("100"),
	})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.ledger.CreatePayment(s.ctx, PaymentInput{ContractID: uuid.New(), Amount: dec("1")})
	s.ErrorIs(err, ErrInvalidInput)

	negative := dec("-5")
	c := s.contract(p.ID, "100")
	_, err = s.ledger.UpdateContract(s.ctx, c.ID, model.ContractPatch{RentAmount: &negative})
	s.ErrorIs(err, ErrInvalidInput)

	early := day(2024, 1, 1)
	_, err = s.ledger.UpdateContract(s.ctx, c.ID, model.ContractPatch{EndDate: &early})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ServiceSuite) TestMissingParentIsValidationError() {
	_, err := s.ledger.CreateContract(s.ctx, ContractInput{PropertyID: uuid.New(), TenantName: "Petrov", RentAmount: dec("1")})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.ledger.CreateExpense(s.ctx, ExpenseInput{PropertyID: uuid.New(), Amount: dec("1"), Date: day(2025, 1, 1)})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.ledger.CreatePayment(s.ctx, PaymentInput{ContractID: uuid.New(), Amount: dec("1"), Date: day(2025, 1, 1)})
	s.ErrorIs(err, ErrInvalidInput)

	contracts, err := s.ledger.ListContracts(s.ctx, false)
	s.Require().NoError(err)
	s.Empty(contracts)
}

func (s *ServiceSuite) TestNotFound() {
	id := uuid.New()
	_, err := s.ledger.GetProperty(s.ctx, id)
	s.ErrorIs(err, ErrNotFound)

	name := "x"
	_, err = s.ledger.UpdateProperty(s.ctx, id, model.PropertyPatch{Name: &name})
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.ledger.DeleteContract(s.ctx, id), ErrNotFound)
	s.ErrorIs(s.ledger.DeletePayment(s.ctx, id), ErrNotFound)

	_, err = s.tax.CalculateForProperty(s.ctx, id, model.DefaultRegime())
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceSuite) TestDatesAreNormalized() {
	p := s.property("Loft")
	c := s.contract(p.ID, "100")
	moscow := time.FixedZone("MSK", 3*3600)

	payment := s.payment(c.ID, "100", time.Date(2025, 3, 15, 22, 30, 0, 0, moscow))
	s.True(payment.Date.Equal(day(2025, 3, 15)))
}

func (s *ServiceSuite) TestCascadeThroughService() {
	p := s.property("Loft")
	c := s.contract(p.ID, "30000")
	s.payment(c.ID, "30000", day(2025, 3, 1))
	s.expense(p.ID, "1000", day(2025, 3, 2))

	s.Require().NoError(s.ledger.DeleteProperty(s.ctx, p.ID))

	contracts, err := s.ledger.ListContractsByProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Empty(contracts)
	payments, err := s.ledger.ListPaymentsByContract(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Empty(payments)
	expenses, err := s.ledger.ListExpensesByProperty(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Empty(expenses)
}

func (s *ServiceSuite) TestCalculateForProperty() {
	p := s.property("A")
	s.contract(p.ID, "50000")
	inactive := s.contract(p.ID, "20000")
	off := false
	_, err := s.ledger.UpdateContract(s.ctx, inactive.ID, model.ContractPatch{IsActive: &off})
	s.Require().NoError(err)
	s.expense(p.ID, "5000", day(2025, 2, 1))

	result, err := s.tax.CalculateForProperty(s.ctx, p.ID, model.DefaultRegime())
	s.Require().NoError(err)
	s.Equal(p.ID, result.PropertyID)
	s.Equal("A", result.PropertyName)
	s.assertResult(result.TaxResult, "50000", "5000", "0.04", "2000", "43000")
}

func (s *ServiceSuite) TestEmptyPropertyYieldsZero() {
	p := s.property("Empty")
	result, err := s.tax.CalculateForProperty(s.ctx, p.ID, model.DefaultRegime())
	s.Require().NoError(err)
	s.assertResult(result.TaxResult, "0", "0", "0.04", "0", "0")
}

func (s *ServiceSuite) TestCalculateAggregate() {
	a := s.property("A")
	s.contract(a.ID, "50000")
	s.expense(a.ID, "5000", day(2025, 2, 1))
	b := s.property("B")
	s.contract(b.ID, "30000")

	perProperty, err := s.tax.CalculateAllProperties(s.ctx, model.DefaultRegime())
	s.Require().NoError(err)
	s.Require().Len(perProperty, 2)
	s.Equal(a.ID, perProperty[0].PropertyID)
	s.assertResult(perProperty[0].TaxResult, "50000", "5000", "0.04", "2000", "43000")
	s.assertResult(perProperty[1].TaxResult, "30000", "0", "0.04", "1200", "28800")

	total, err := s.tax.CalculateAggregate(s.ctx, model.DefaultRegime())
	s.Require().NoError(err)
	s.assertResult(total, "80000", "5000", "0.04", "3200", "71800")

	individual := model.Regime{Landlord: model.LandlordIndividual, Tenant: model.TenantNaturalPerson}
	total, err = s.tax.CalculateAggregate(s.ctx, individual)
	s.Require().NoError(err)
	s.assertResult(total, "80000", "5000", "0.13", "10400", "64600")
}

func (s *ServiceSuite) TestAggregateWithoutProperties() {
	total, err := s.tax.CalculateAggregate(s.ctx, model.DefaultRegime())
	s.Require().NoError(err)
	s.assertResult(total, "0", "0", "0.04", "0", "0")
}

func (s *ServiceSuite) TestCalculateRejectsNegativeInput() {
	_, err := s.tax.Calculate(dec("-1"), dec("0"), model.DefaultRegime())
	s.ErrorIs(err, ErrInvalidInput)

	result, err := s.tax.Calculate(dec("100000"), dec("0"), model.Regime{Landlord: model.LandlordSoleProprietor})
	s.Require().NoError(err)
	s.assertResult(result, "100000", "0", "0.06", "6000", "94000")
}

func (s *ServiceSuite) TestRegimePersists() {
	s.Equal(model.DefaultRegime(), s.tax.Regime())

	err := s.tax.SetRegime(s.ctx, model.Regime{Landlord: "castle"})
	s.ErrorIs(err, ErrInvalidInput)
	s.Equal(model.DefaultRegime(), s.tax.Regime())

	legal := model.Regime{Landlord: model.LandlordSelfEmployed, Tenant: model.TenantLegalEntity}
	s.Require().NoError(s.tax.SetRegime(s.ctx, legal))
	s.Equal(legal, s.tax.Regime())

	reloaded, err := NewTaxService(s.ctx, s.store, model.DefaultRegime(), zerolog.Nop())
	s.Require().NoError(err)
	s.Equal(legal, reloaded.Regime())
}

func (s *ServiceSuite) TestCorruptStoredRegimeFallsBack() {
	s.Require().NoError(s.store.PutSetting(s.ctx, SettingRegime, "garbage"))
	fallback := model.Regime{Landlord: model.LandlordIndividual, Tenant: model.TenantNaturalPerson}

	reloaded, err := NewTaxService(s.ctx, s.store, fallback, zerolog.Nop())
	s.Require().NoError(err)
	s.Equal(fallback, reloaded.Regime())
}

func (s *ServiceSuite) TestDashboard() {
	a := s.property("A")
	c := s.contract(a.ID, "50000")
	s.expense(a.ID, "5000", day(2025, 2, 1))
	b := s.property("B")
	s.contract(b.ID, "30000")
	for d := 1; d <= 7; d++ {
		s.payment(c.ID, "1000", day(2025, 3, d))
	}

	dashboard, err := s.reports.Dashboard(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DefaultRegime(), dashboard.Regime)
	s.Equal(2, dashboard.PropertyCount)
	s.Equal(2, dashboard.ContractCount)
	s.Equal(2, dashboard.ActiveContracts)
	s.Len(dashboard.RecentPayments, 5)
	s.True(dashboard.RecentPayments[0].Date.Equal(day(2025, 3, 7)))
	s.Len(dashboard.UpcomingPayments, 2)
	s.assertResult(dashboard.Totals, "80000", "5000", "0.04", "3200", "71800")
}

func (s *ServiceSuite) TestMonthlySeries() {
	p := s.property("A")
	c := s.contract(p.ID, "30000")
	s.payment(c.ID, "30000", day(2025, 1, 10))
	s.payment(c.ID, "30000", day(2025, 3, 10))
	s.payment(c.ID, "15000", day(2025, 3, 25))
	s.payment(c.ID, "99999", day(2024, 6, 1))
	s.expense(p.ID, "2000", day(2025, 2, 14))

	now := time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC)
	series, err := s.reports.MonthlySeries(s.ctx, 3, now)
	s.Require().NoError(err)
	s.Require().Len(series, 3)

	s.True(series[0].Month.Equal(day(2025, 1, 1)))
	s.True(series[0].Income.Equal(dec("30000")))
	s.True(series[1].Month.Equal(day(2025, 2, 1)))
	s.True(series[1].Income.IsZero())
	s.True(series[1].Expenses.Equal(dec("2000")))
	s.True(series[2].Month.Equal(day(2025, 3, 1)))
	s.True(series[2].Income.Equal(dec("45000")))

	series, err = s.reports.MonthlySeries(s.ctx, 0, now)
	s.Require().NoError(err)
	s.Len(series, DefaultSeriesMonths)

	_, err = s.reports.MonthlySeries(s.ctx, MaxSeriesMonths+1, now)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ServiceSuite) TestExport() {
	p := s.property("A")
	c := s.contract(p.ID, "30000")
	s.payment(c.ID, "30000", day(2025, 1, 10))
	s.expense(p.ID, "2000", day(2025, 2, 14))

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	snapshot, err := s.reports.Export(s.ctx, now)
	s.Require().NoError(err)
	s.Len(snapshot.Properties, 1)
	s.Len(snapshot.Contracts, 1)
	s.Len(snapshot.Payments, 1)
	s.Len(snapshot.Expenses, 1)
	s.True(snapshot.ExportDate.Equal(now))
}

type brokenStore struct {
	Store
}

var errDiskGone = errors.New("disk gone")

func (brokenStore) ListProperties(context.Context) ([]model.Property, error) {
	return nil, errDiskGone
}

func (brokenStore) GetSetting(context.Context, string) (string, error) {
	return "", repository.ErrNotFound
}

func TestStorageErrorsAreClassified(t *testing.T) {
	store := brokenStore{}
	ledger := NewLedgerService(store, zerolog.Nop())

	_, err := ledger.ListProperties(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, errDiskGone)

	taxService, err := NewTaxService(context.Background(), store, model.DefaultRegime(), zerolog.Nop())
	require.NoError(t, err)
	_, err = taxService.CalculateAggregate(context.Background(), model.DefaultRegime())
	assert.ErrorIs(t, err, ErrStorage)
}
