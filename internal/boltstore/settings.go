package boltstore

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"github.com/nurpe/renttax/internal/repository"
)

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketSettings)
		if err != nil {
			return err
		}
		data := b.Get([]byte(key))
		if data == nil {
			return repository.ErrNotFound
		}
		value = string(data)
		return nil
	})
	return value, err
}

func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketSettings)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}
