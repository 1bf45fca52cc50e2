package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/render"
	"github.com/rei/cms-backend/internal/repository"
	"github.com/rei/cms-backend/internal/slug"
	"gorm.io/gorm"
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
}

func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

type CreateArticleInput struct {
	Title     string
	Markdown  string
	Published bool
}

type UpdateArticleInput struct {
	Title     *string
	Markdown  *string
	Published *bool
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]*domain.Article, error) {
	return s.articleRepo.ListPublished(ctx)
}

func (s *ArticleService) GetPublishedBySlug(ctx context.Context, articleSlug string) (*domain.Article, error) {
	article, err := s.articleRepo.GetPublishedBySlug(ctx, articleSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) ListAll(ctx context.Context) ([]*domain.Article, error) {
	return s.articleRepo.ListAll(ctx)
}

func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// Create renders the markdown once and derives the slug from the title,
// appending a random suffix when the base slug is already taken.
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput) (*domain.Article, error) {
	html, err := render.MarkdownToHTML(input.Markdown)
	if err != nil {
		return nil, err
	}

	articleSlug := slug.Generate(input.Title)
	exists, err := s.articleRepo.SlugExists(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		articleSlug = slug.Unique(articleSlug)
	}

	article := &domain.Article{
		ID:        uuid.New(),
		Title:     input.Title,
		Slug:      articleSlug,
		Markdown:  input.Markdown,
		HTML:      html,
		Published: input.Published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Update applies a partial update. The HTML is re-rendered only when new
// markdown is supplied; the slug never changes after creation.
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (*domain.Article, error) {
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Markdown != nil {
		article.Markdown = *input.Markdown
		html, err := render.MarkdownToHTML(*input.Markdown)
		if err != nil {
			return nil, err
		}
		article.HTML = html
	}
	if input.Published != nil {
		article.Published = *input.Published
	}
	article.UpdatedAt = time.Now()

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.articleRepo.Delete(ctx, id)
}
