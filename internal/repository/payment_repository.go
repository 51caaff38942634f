package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/renttax/internal/model"
)

func (s *Store) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireParent[model.Contract](tx, payment.ContractID, "contract"); err != nil {
			return err
		}
		payment.ID = NewID()
		payment.CreatedAt = s.stamp()
		return tx.Create(payment).Error
	})
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return getByID[model.Payment](ctx, s.db, id)
}

func (s *Store) ListPayments(ctx context.Context) ([]model.Payment, error) {
	return listAll[model.Payment](ctx, s.db)
}

func (s *Store) ListPaymentsByContract(ctx context.Context, contractID uuid.UUID) ([]model.Payment, error) {
	return listBy[model.Payment](ctx, s.db, columnContractID, contractID)
}

// ListRecentPayments returns up to limit payments, newest payment date first.
func (s *Store) ListRecentPayments(ctx context.Context, limit int) ([]model.Payment, error) {
	rows := make([]model.Payment, 0)
	err := s.db.WithContext(ctx).
		Order("date DESC").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) UpdatePayment(ctx context.Context, id uuid.UUID, patch model.PaymentPatch) (*model.Payment, error) {
	var saved *model.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getByID[model.Payment](ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.ContractID != nil && *patch.ContractID != current.ContractID {
			if err := requireParent[model.Contract](tx, *patch.ContractID, "contract"); err != nil {
				return err
			}
		}
		patch.Apply(current)
		if err := tx.Save(current).Error; err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.Payment](s.db.WithContext(ctx), id)
}
