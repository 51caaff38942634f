package boltstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/repository"
)

func (s *Store) CreateProperty(ctx context.Context, property *model.Property) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		property.ID = repository.NewID()
		property.CreatedAt = s.stamp()
		return put(tx, BucketProperties, property.ID, property)
	})
}

func (s *Store) GetProperty(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var property *model.Property
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		property, err = get[model.Property](tx, BucketProperties, id)
		return err
	})
	return property, err
}

func (s *Store) ListProperties(ctx context.Context) ([]model.Property, error) {
	var rows []model.Property
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		rows, err = list[model.Property](tx, BucketProperties, nil)
		return err
	})
	return rows, err
}

func (s *Store) UpdateProperty(ctx context.Context, id uuid.UUID, patch model.PropertyPatch) (*model.Property, error) {
	var property *model.Property
	err := s.update(ctx, func(tx *bolt.Tx) error {
		var err error
		property, err = get[model.Property](tx, BucketProperties, id)
		if err != nil {
			return err
		}
		patch.Apply(property)
		return put(tx, BucketProperties, id, property)
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

// DeleteProperty removes contracts, their payments and the expenses of the
// property in the same transaction as the property.
func (s *Store) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		ok, err := has(tx, BucketProperties, id)
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrNotFound
		}

		contracts, err := list[model.Contract](tx, BucketContracts, func(c *model.Contract) bool {
			return c.PropertyID == id
		})
		if err != nil {
			return err
		}
		for _, contract := range contracts {
			if err := deleteContract(tx, contract.ID); err != nil {
				return fmt.Errorf("delete contract %s: %w", contract.ID, err)
			}
		}

		expenses, err := list[model.Expense](tx, BucketExpenses, func(e *model.Expense) bool {
			return e.PropertyID == id
		})
		if err != nil {
			return err
		}
		for _, expense := range expenses {
			if err := remove(tx, BucketExpenses, expense.ID); err != nil {
				return fmt.Errorf("delete expense %s: %w", expense.ID, err)
			}
		}

		return remove(tx, BucketProperties, id)
	})
}
