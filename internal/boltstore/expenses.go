package boltstore

import (
	"context"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/repository"
)

func (s *Store) CreateExpense(ctx context.Context, expense *model.Expense) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		if err := requireParent(tx, BucketProperties, expense.PropertyID); err != nil {
			return err
		}
		expense.ID = repository.NewID()
		expense.CreatedAt = s.stamp()
		return put(tx, BucketExpenses, expense.ID, expense)
	})
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var expense *model.Expense
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		expense, err = get[model.Expense](tx, BucketExpenses, id)
		return err
	})
	return expense, err
}

func (s *Store) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	return s.listExpenses(ctx, nil)
}

func (s *Store) ListExpensesByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Expense, error) {
	return s.listExpenses(ctx, func(e *model.Expense) bool { return e.PropertyID == propertyID })
}

func (s *Store) listExpenses(ctx context.Context, keep func(*model.Expense) bool) ([]model.Expense, error) {
	var rows []model.Expense
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		rows, err = list(tx, BucketExpenses, keep)
		return err
	})
	return rows, err
}

func (s *Store) UpdateExpense(ctx context.Context, id uuid.UUID, patch model.ExpensePatch) (*model.Expense, error) {
	var expense *model.Expense
	err := s.update(ctx, func(tx *bolt.Tx) error {
		var err error
		expense, err = get[model.Expense](tx, BucketExpenses, id)
		if err != nil {
			return err
		}
		if patch.PropertyID != nil && *patch.PropertyID != expense.PropertyID {
			if err := requireParent(tx, BucketProperties, *patch.PropertyID); err != nil {
				return err
			}
		}
		patch.Apply(expense)
		return put(tx, BucketExpenses, id, expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		return remove(tx, BucketExpenses, id)
	})
}
