package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/renttax/internal/model"
)

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).Where(&model.Setting{Key: key}).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.Setting{Key: key, Value: value}).Error
}
