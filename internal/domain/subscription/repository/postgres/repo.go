package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/entities"
	serrors "github.com/okdewit/ytdlp-docker/internal/domain/subscription/errors"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.SubscriptionRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, sub *entities.Subscription) error {
	result := r.db.WithContext(ctx).Create(sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return serrors.ErrSubscriptionExists
		}
		return serrors.ErrDatabaseOperation
	}
	return nil
}

func (r *Repository) GetByURL(ctx context.Context, url string) (*entities.Subscription, error) {
	var sub entities.Subscription
	result := r.db.WithContext(ctx).
		Preload("Channel").
		Where("url = ?", url).
		First(&sub)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, serrors.ErrSubscriptionNotFound
		}
		return nil, serrors.ErrDatabaseOperation
	}

	return &sub, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Subscription, error) {
	var subs []entities.Subscription
	result := r.db.WithContext(ctx).
		Preload("Channel").
		Order("created_at").
		Find(&subs)

	if result.Error != nil {
		return nil, serrors.ErrDatabaseOperation
	}

	return subs, nil
}

func (r *Repository) Delete(ctx context.Context, url string) error {
	result := r.db.WithContext(ctx).
		Where("url = ?", url).
		Delete(&entities.Subscription{})

	if result.Error != nil {
		return serrors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return serrors.ErrSubscriptionNotFound
	}

	return nil
}

func (r *Repository) UpdateTypeAndChannel(ctx context.Context, url, subType string, channelRef *uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("url = ?", url).
		Updates(map[string]interface{}{
			"type":       subType,
			"channel_id": channelRef,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return serrors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return serrors.ErrSubscriptionNotFound
	}

	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Count(&count)

	if result.Error != nil {
		return 0, serrors.ErrDatabaseOperation
	}

	return int(count), nil
}
