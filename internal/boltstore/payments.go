package boltstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/repository"
)

func (s *Store) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		if err := requireParent(tx, BucketContracts, payment.ContractID); err != nil {
			return err
		}
		payment.ID = repository.NewID()
		payment.CreatedAt = s.stamp()
		return put(tx, BucketPayments, payment.ID, payment)
	})
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment *model.Payment
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		payment, err = get[model.Payment](tx, BucketPayments, id)
		return err
	})
	return payment, err
}

func (s *Store) ListPayments(ctx context.Context) ([]model.Payment, error) {
	return s.listPayments(ctx, nil)
}

func (s *Store) ListPaymentsByContract(ctx context.Context, contractID uuid.UUID) ([]model.Payment, error) {
	return s.listPayments(ctx, func(p *model.Payment) bool { return p.ContractID == contractID })
}

func (s *Store) ListRecentPayments(ctx context.Context, limit int) ([]model.Payment, error) {
	rows, err := s.listPayments(ctx, nil)
	if err != nil {
		return nil, err
	}
	// keys are ascending ids, so reversing first keeps newer rows ahead on ties
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) listPayments(ctx context.Context, keep func(*model.Payment) bool) ([]model.Payment, error) {
	var rows []model.Payment
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		rows, err = list(tx, BucketPayments, keep)
		return err
	})
	return rows, err
}

func (s *Store) UpdatePayment(ctx context.Context, id uuid.UUID, patch model.PaymentPatch) (*model.Payment, error) {
	var payment *model.Payment
	err := s.update(ctx, func(tx *bolt.Tx) error {
		var err error
		payment, err = get[model.Payment](tx, BucketPayments, id)
		if err != nil {
			return err
		}
		if patch.ContractID != nil && *patch.ContractID != payment.ContractID {
			if err := requireParent(tx, BucketContracts, *patch.ContractID); err != nil {
				return err
			}
		}
		patch.Apply(payment)
		return put(tx, BucketPayments, id, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		return remove(tx, BucketPayments, id)
	})
}
