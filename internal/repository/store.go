package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store persists properties, contracts, payments, expenses and settings
// through gorm. Cascading deletes run inside a single transaction.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock replaces the creation-time source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// NewID returns a time-ordered id, so ordering by id follows insertion order.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func listAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// listBy returns rows whose column equals value. column is always one of the
// package's foreign key constants, never caller input.
func listBy[T any](ctx context.Context, db *gorm.DB, column string, value interface{}) ([]T, error) {
	rows := make([]T, 0)
	err := db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ?", column), value).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func exists[T any](tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func requireParent[T any](tx *gorm.DB, id uuid.UUID, what string) error {
	ok, err := exists[T](tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrMissingParent, what, id)
	}
	return nil
}

func deleteByID[T any](tx *gorm.DB, id uuid.UUID) error {
	res := tx.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const (
	columnPropertyID = "property_id"
	columnContractID = "contract_id"
)
