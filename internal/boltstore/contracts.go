package boltstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/repository"
)

func (s *Store) CreateContract(ctx context.Context, contract *model.Contract) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		if err := requireParent(tx, BucketProperties, contract.PropertyID); err != nil {
			return err
		}
		contract.ID = repository.NewID()
		contract.IsActive = true
		contract.CreatedAt = s.stamp()
		return put(tx, BucketContracts, contract.ID, contract)
	})
}

func (s *Store) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract *model.Contract
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		contract, err = get[model.Contract](tx, BucketContracts, id)
		return err
	})
	return contract, err
}

func (s *Store) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return s.listContracts(ctx, nil)
}

func (s *Store) ListContractsByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Contract, error) {
	return s.listContracts(ctx, func(c *model.Contract) bool { return c.PropertyID == propertyID })
}

func (s *Store) ListActiveContracts(ctx context.Context) ([]model.Contract, error) {
	return s.listContracts(ctx, func(c *model.Contract) bool { return c.IsActive })
}

func (s *Store) listContracts(ctx context.Context, keep func(*model.Contract) bool) ([]model.Contract, error) {
	var rows []model.Contract
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		rows, err = list(tx, BucketContracts, keep)
		return err
	})
	return rows, err
}

func (s *Store) UpdateContract(ctx context.Context, id uuid.UUID, patch model.ContractPatch) (*model.Contract, error) {
	var contract *model.Contract
	err := s.update(ctx, func(tx *bolt.Tx) error {
		var err error
		contract, err = get[model.Contract](tx, BucketContracts, id)
		if err != nil {
			return err
		}
		if patch.PropertyID != nil && *patch.PropertyID != contract.PropertyID {
			if err := requireParent(tx, BucketProperties, *patch.PropertyID); err != nil {
				return err
			}
		}
		patch.Apply(contract)
		return put(tx, BucketContracts, id, contract)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *Store) DeleteContract(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		return deleteContract(tx, id)
	})
}

func deleteContract(tx *bolt.Tx, id uuid.UUID) error {
	ok, err := has(tx, BucketContracts, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	payments, err := list[model.Payment](tx, BucketPayments, func(p *model.Payment) bool {
		return p.ContractID == id
	})
	if err != nil {
		return err
	}
	for _, payment := range payments {
		if err := remove(tx, BucketPayments, payment.ID); err != nil {
			return fmt.Errorf("delete payment %s: %w", payment.ID, err)
		}
	}
	return remove(tx, BucketContracts, id)
}
