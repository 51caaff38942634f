// Package boltstore keeps each collection in its own bbolt bucket, keyed by
// the record id, with JSON encoded values.
package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/nurpe/renttax/internal/repository"
)

const (
	BucketProperties = "properties"
	BucketContracts  = "contracts"
	BucketPayments   = "payments"
	BucketExpenses   = "expenses"
	BucketSettings   = "settings"
)

var buckets = []string{BucketProperties, BucketContracts, BucketPayments, BucketExpenses, BucketSettings}

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// Open opens (or creates) the database file and its buckets.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func (s *Store) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(fn)
}

func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", name)
	}
	return b, nil
}

func get[T any](tx *bolt.Tx, name string, id uuid.UUID) (*T, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return nil, err
	}
	data := b.Get(id[:])
	if data == nil {
		return nil, repository.ErrNotFound
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", name, id, err)
	}
	return &value, nil
}

func put(tx *bolt.Tx, name string, id uuid.UUID, value interface{}) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put(id[:], data)
}

// list walks the bucket in key order; ids are time ordered, so this is
// insertion order.
func list[T any](tx *bolt.Tx, name string, keep func(*T) bool) ([]T, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return nil, err
	}
	rows := make([]T, 0)
	err = b.ForEach(func(k, v []byte) error {
		var value T
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		if keep == nil || keep(&value) {
			rows = append(rows, value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func has(tx *bolt.Tx, name string, id uuid.UUID) (bool, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return false, err
	}
	return b.Get(id[:]) != nil, nil
}

func requireParent(tx *bolt.Tx, name string, id uuid.UUID) error {
	ok, err := has(tx, name, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", repository.ErrMissingParent, name, id)
	}
	return nil
}

func remove(tx *bolt.Tx, name string, id uuid.UUID) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	if b.Get(id[:]) == nil {
		return repository.ErrNotFound
	}
	return b.Delete(id[:])
}
