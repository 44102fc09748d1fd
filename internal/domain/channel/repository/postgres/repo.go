package postgres

import (
	"context"
	"errors"

	"github.com/okdewit/ytdlp-docker/internal/domain/channel/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	cherrors "github.com/okdewit/ytdlp-docker/internal/domain/channel/errors"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.ChannelRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, channel *entities.Channel) error {
	result := r.db.WithContext(ctx).Create(channel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return cherrors.ErrChannelAlreadyExists
		}
		return cherrors.ErrDatabaseOperation
	}
	return nil
}

func (r *Repository) GetByChannelID(ctx context.Context, channelID string) (*entities.Channel, error) {
	var channel entities.Channel
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		First(&channel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cherrors.ErrChannelNotFound
		}
		return nil, cherrors.ErrDatabaseOperation
	}

	return &channel, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Channel, error) {
	var channels []entities.Channel
	result := r.db.WithContext(ctx).
		Order("name").
		Find(&channels)

	if result.Error != nil {
		return nil, cherrors.ErrDatabaseOperation
	}

	return channels, nil
}
