package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/renttax/internal/model"
)

const (
	DefaultSeriesMonths = 6
	MaxSeriesMonths     = 36

	dashboardRecent   = 5
	dashboardUpcoming = 5
)

type ReportService struct {
	store Store
	tax   *TaxService
	log   zerolog.Logger
}

func NewReportService(store Store, taxService *TaxService, log zerolog.Logger) *ReportService {
	return &ReportService{store: store, tax: taxService, log: log}
}

func (s *ReportService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	regime := s.tax.Regime()
	dashboard := &model.Dashboard{Regime: regime}

	var (
		properties []model.Property
		contracts  []model.Contract
		active     []model.Contract
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		properties, err = s.store.ListProperties(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		contracts, err = s.store.ListContracts(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		active, err = s.store.ListActiveContracts(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		dashboard.RecentPayments, err = s.store.ListRecentPayments(gctx, dashboardRecent)
		return classify(err)
	})
	g.Go(func() (err error) {
		dashboard.Totals, err = s.tax.CalculateAggregate(gctx, regime)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard.PropertyCount = len(properties)
	dashboard.ContractCount = len(contracts)
	dashboard.ActiveContracts = len(active)
	if len(active) > dashboardUpcoming {
		active = active[:dashboardUpcoming]
	}
	dashboard.UpcomingPayments = active
	return dashboard, nil
}

// MonthlySeries buckets payments and expenses by calendar month for the
// months ending with the month of now, oldest first.
func (s *ReportService) MonthlySeries(ctx context.Context, months int, now time.Time) ([]model.MonthlyBucket, error) {
	if months == 0 {
		months = DefaultSeriesMonths
	}
	if months < 0 || months > MaxSeriesMonths {
		return nil, invalid("months must be between 1 and %d", MaxSeriesMonths)
	}

	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	first := current.AddDate(0, -(months - 1), 0)

	buckets := make([]model.MonthlyBucket, months)
	index := make(map[time.Time]int, months)
	for i := range buckets {
		month := first.AddDate(0, i, 0)
		buckets[i] = model.MonthlyBucket{Month: month, Income: decimal.Zero, Expenses: decimal.Zero}
		index[month] = i
	}

	var (
		payments []model.Payment
		expenses []model.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		payments, err = s.store.ListPayments(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		expenses, err = s.store.ListExpenses(gctx)
		return classify(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range payments {
		if i, ok := index[monthOf(p.Date)]; ok {
			buckets[i].Income = buckets[i].Income.Add(p.Amount)
		}
	}
	for _, e := range expenses {
		if i, ok := index[monthOf(e.Date)]; ok {
			buckets[i].Expenses = buckets[i].Expenses.Add(e.Amount)
		}
	}
	return buckets, nil
}

// Export reads every collection into a single snapshot document.
func (s *ReportService) Export(ctx context.Context, now time.Time) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{ExportDate: now.UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot.Properties, err = s.store.ListProperties(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		snapshot.Contracts, err = s.store.ListContracts(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		snapshot.Payments, err = s.store.ListPayments(gctx)
		return classify(err)
	})
	g.Go(func() (err error) {
		snapshot.Expenses, err = s.store.ListExpenses(gctx)
		return classify(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("properties", len(snapshot.Properties)).
		Int("contracts", len(snapshot.Contracts)).
		Int("payments", len(snapshot.Payments)).
		Int("expenses", len(snapshot.Expenses)).
		Msg("export snapshot built")
	return snapshot, nil
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
