package postgres

import (
	"context"
	"errors"

	"github.com/okdewit/ytdlp-docker/internal/domain/settings/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings/entities"
	seterrors "github.com/okdewit/ytdlp-docker/internal/domain/settings/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.SettingsRepository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	result := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, seterrors.ErrSettingNotFound
		}
		return nil, seterrors.ErrDatabaseOperation
	}

	return &setting, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	setting := entities.Setting{Key: key, Value: value}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting)

	if result.Error != nil {
		return seterrors.ErrDatabaseOperation
	}

	return nil
}
