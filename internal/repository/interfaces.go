package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionRepository owns all mutation of session rows.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// GetUserBySessionID joins the session to its owning user and only matches
	// rows whose expiry lies in the future.
	GetUserBySessionID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes the row only if it has already expired.
	DeleteExpired(ctx context.Context, id uuid.UUID) error
}

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListPublished(ctx context.Context) ([]*domain.Article, error)
	ListAll(ctx context.Context) ([]*domain.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Book, error)
	ListPublished(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Article ArticleRepository
	Book    BookRepository
}
