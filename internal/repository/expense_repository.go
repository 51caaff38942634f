package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/renttax/internal/model"
)

func (s *Store) CreateExpense(ctx context.Context, expense *model.Expense) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireParent[model.Property](tx, expense.PropertyID, "property"); err != nil {
			return err
		}
		expense.ID = NewID()
		expense.CreatedAt = s.stamp()
		return tx.Create(expense).Error
	})
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	return getByID[model.Expense](ctx, s.db, id)
}

func (s *Store) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	return listAll[model.Expense](ctx, s.db)
}

func (s *Store) ListExpensesByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Expense, error) {
	return listBy[model.Expense](ctx, s.db, columnPropertyID, propertyID)
}

func (s *Store) UpdateExpense(ctx context.Context, id uuid.UUID, patch model.ExpensePatch) (*model.Expense, error) {
	var saved *model.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getByID[model.Expense](ctx, tx, id)
		if err != nil {
			return err
		}
		if patch.PropertyID != nil && *patch.PropertyID != current.PropertyID {
			if err := requireParent[model.Property](tx, *patch.PropertyID, "property"); err != nil {
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

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.Expense](s.db.WithContext(ctx), id)
}
