package repository

import (
	"context"

	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsRepository interface {
	Save(ctx context.Context, article *model.NewsArticle, opts ...utils.DBOption) error
	Latest(ctx context.Context, opts ...utils.DBOption) (*model.NewsArticle, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{
		db: db,
	}
}

func (r *newsRepository) Save(ctx context.Context, article *model.NewsArticle, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	// Re-fetching the same article is a no-op.
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoNothing: true,
	}).Create(article).Error
}

func (r *newsRepository) Latest(ctx context.Context, opts ...utils.DBOption) (*model.NewsArticle, error) {
	var article model.NewsArticle
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Order("published_at DESC").First(&article)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	return &article, nil
}
