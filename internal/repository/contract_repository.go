package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/renttax/internal/model"
)

func (s *Store) CreateContract(ctx context.Context, contract *model.Contract) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireParent[model.Property](tx, contract.PropertyID, "property"); err != nil {
			return err
		}
		contract.ID = NewID()
		contract.IsActive = true
		contract.CreatedAt = s.stamp()
		return tx.Create(contract).Error
	})
}

func (s *Store) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	return getByID[model.Contract](ctx, s.db, id)
}

func (s *Store) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return listAll[model.Contract](ctx, s.db)
}

func (s *Store) ListContractsByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Contract, error) {
	return listBy[model.Contract](ctx, s.db, columnPropertyID, propertyID)
}

func (s *Store) ListActiveContracts(ctx context.Context) ([]model.Contract, error) {
	return listBy[model.Contract](ctx, s.db, "is_active", true)
}

func (s *Store) UpdateContract(ctx context.Context, id uuid.UUID, patch model.ContractPatch) (*model.Contract, error) {
	var saved *model.Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getByID[model.Contract](ctx, tx, id)
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

// DeleteContract removes the contract's payments before the contract.
func (s *Store) DeleteContract(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteContract(tx, id)
	})
}

func deleteContract(tx *gorm.DB, id uuid.UUID) error {
	ok, err := exists[model.Contract](tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if err := tx.Where(columnContractID+" = ?", id).Delete(&model.Payment{}).Error; err != nil {
		return fmt.Errorf("delete payments of contract %s: %w", id, err)
	}
	return deleteByID[model.Contract](tx, id)
}
