package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"gorm.io/gorm"
)

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *articleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	var article domain.Article
	err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.WithContext(ctx).First(&article, "slug = ? AND published = true", slug).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListPublished(ctx context.Context) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).
		Where("published = true").
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListAll(ctx context.Context) ([]*domain.Article, error) {
	var articles []*domain.Article
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Article{}, "id = ?", id).Error
}
