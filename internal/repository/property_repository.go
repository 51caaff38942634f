package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/renttax/internal/model"
)

func (s *Store) CreateProperty(ctx context.Context, property *model.Property) error {
	property.ID = NewID()
	property.CreatedAt = s.stamp()
	return s.db.WithContext(ctx).Create(property).Error
}

func (s *Store) GetProperty(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	return getByID[model.Property](ctx, s.db, id)
}

func (s *Store) ListProperties(ctx context.Context) ([]model.Property, error) {
	return listAll[model.Property](ctx, s.db)
}

func (s *Store) UpdateProperty(ctx context.Context, id uuid.UUID, patch model.PropertyPatch) (*model.Property, error) {
	var saved *model.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getByID[model.Property](ctx, tx, id)
		if err != nil {
			return err
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

// DeleteProperty removes the property's contracts (with their payments) and
// expenses before the property itself.
func (s *Store) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists[model.Property](tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		var contractIDs []uuid.UUID
		if err := tx.Model(&model.Contract{}).
			Where(columnPropertyID+" = ?", id).
			Order("id ASC").
			Pluck("id", &contractIDs).Error; err != nil {
			return err
		}
		for _, contractID := range contractIDs {
			if err := deleteContract(tx, contractID); err != nil {
				return fmt.Errorf("delete contract %s: %w", contractID, err)
			}
		}

		if err := tx.Where(columnPropertyID+" = ?", id).Delete(&model.Expense{}).Error; err != nil {
			return fmt.Errorf("delete expenses of property %s: %w", id, err)
		}
		return deleteByID[model.Property](tx, id)
	})
}
