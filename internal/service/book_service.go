package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/render"
	"github.com/rei/cms-backend/internal/repository"
	"gorm.io/gorm"
)

type BookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

type CreateBookInput struct {
	Title     string
	Slug      string
	Markdown  string
	ImageURL  *string
	Published bool
}

type UpdateBookInput struct {
	Title     *string
	Slug      *string
	Markdown  *string
	ImageURL  *string
	Published *bool
}

func (s *BookService) ListPublished(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.ListPublished(ctx)
}

func (s *BookService) GetPublishedBySlug(ctx context.Context, bookSlug string) (*domain.Book, error) {
	book, err := s.bookRepo.GetPublishedBySlug(ctx, bookSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Create stores a book with a caller-supplied slug. Unlike articles, book
// slugs are chosen by the editor.
func (s *BookService) Create(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	html, err := render.MarkdownToHTML(input.Markdown)
	if err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:        uuid.New(),
		Title:     input.Title,
		Slug:      input.Slug,
		Markdown:  input.Markdown,
		HTML:      html,
		ImageURL:  input.ImageURL,
		Published: input.Published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *BookService) Update(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Slug != nil {
		book.Slug = *input.Slug
	}
	if input.Markdown != nil {
		book.Markdown = *input.Markdown
		html, err := render.MarkdownToHTML(*input.Markdown)
		if err != nil {
			return nil, err
		}
		book.HTML = html
	}
	if input.ImageURL != nil {
		book.ImageURL = input.ImageURL
	}
	if input.Published != nil {
		book.Published = *input.Published
	}
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookRepo.Delete(ctx, id)
}
