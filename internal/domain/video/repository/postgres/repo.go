package postgres

import (
	"context"
	"errors"

	"github.com/okdewit/ytdlp-docker/internal/domain/video/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/entities"
	verrors "github.com/okdewit/ytdlp-docker/internal/domain/video/errors"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.VideoRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, video *entities.Video) error {
	result := r.db.WithContext(ctx).Create(video)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return verrors.ErrVideoExists
		}
		return verrors.ErrDatabaseOperation
	}
	return nil
}

func (r *Repository) GetByVideoID(ctx context.Context, videoID string) (*entities.Video, error) {
	var video entities.Video
	result := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		First(&video)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, verrors.ErrVideoNotFound
		}
		return nil, verrors.ErrDatabaseOperation
	}

	return &video, nil
}

func (r *Repository) ListByChannel(ctx context.Context, channelID uint) ([]entities.Video, error) {
	var videos []entities.Video
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Find(&videos)

	if result.Error != nil {
		return nil, verrors.ErrDatabaseOperation
	}

	return videos, nil
}

func (r *Repository) ExistsByVideoID(ctx context.Context, videoID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.Video{}).
		Where("video_id = ?", videoID).
		Count(&count)

	if result.Error != nil {
		return false, verrors.ErrDatabaseOperation
	}

	return count > 0, nil
}
