package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"gorm.io/gorm"
)

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *bookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	var book domain.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	var book domain.Book
	err := r.db.WithContext(ctx).First(&book, "slug = ? AND published = true", slug).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) ListPublished(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	err := r.db.WithContext(ctx).
		Where("published = true").
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Book{}, "id = ?", id).Error
}
