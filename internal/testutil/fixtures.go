package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	// MinCost keeps fixture creation fast; production hashing uses the
	// verifier's fixed cost.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// Login authenticates the built user against the test server and returns the
// session cookie the server set.
func Login(t *testing.T, ts *TestServer, email, password string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(ts.URL("/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == config.SessionCookieName {
			return cookie
		}
	}

	t.Fatal("login response did not set a session cookie")
	return nil
}

// SessionBuilder creates session rows directly, bypassing the login flow.
type SessionBuilder struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewSessionBuilder(userID uuid.UUID) *SessionBuilder {
	return &SessionBuilder{
		userID:    userID,
		expiresAt: time.Now().Add(24 * time.Hour),
	}
}

// ExpiresAt overrides the expiry, e.g. to build an already-expired session.
func (b *SessionBuilder) ExpiresAt(at time.Time) *SessionBuilder {
	b.expiresAt = at
	return b
}

func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    b.userID,
		ExpiresAt: b.expiresAt,
		CreatedAt: time.Now(),
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// ArticleBuilder creates test articles with a builder pattern
type ArticleBuilder struct {
	title     string
	slug      string
	markdown  string
	published bool
}

func NewArticleBuilder() *ArticleBuilder {
	suffix := uuid.New().String()[:8]
	return &ArticleBuilder{
		title:     "Test Article " + suffix,
		slug:      "test-article-" + suffix,
		markdown:  "# Heading\n\nBody text.",
		published: true,
	}
}

func (b *ArticleBuilder) WithTitle(title string) *ArticleBuilder {
	b.title = title
	return b
}

func (b *ArticleBuilder) WithSlug(slug string) *ArticleBuilder {
	b.slug = slug
	return b
}

func (b *ArticleBuilder) WithMarkdown(markdown string) *ArticleBuilder {
	b.markdown = markdown
	return b
}

func (b *ArticleBuilder) Unpublished() *ArticleBuilder {
	b.published = false
	return b
}

func (b *ArticleBuilder) Build(t *testing.T, db *gorm.DB) *domain.Article {
	t.Helper()

	article := &domain.Article{
		ID:        uuid.New(),
		Title:     b.title,
		Slug:      b.slug,
		Markdown:  b.markdown,
		HTML:      "<h1>Heading</h1>\n<p>Body text.</p>",
		Published: b.published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(article).Error; err != nil {
		t.Fatalf("failed to create article: %v", err)
	}

	return article
}

// BookBuilder creates test books with a builder pattern
type BookBuilder struct {
	title     string
	slug      string
	markdown  string
	imageURL  *string
	published bool
}

func NewBookBuilder() *BookBuilder {
	suffix := uuid.New().String()[:8]
	return &BookBuilder{
		title:     "Test Book " + suffix,
		slug:      "test-book-" + suffix,
		markdown:  "A book about testing.",
		published: true,
	}
}

func (b *BookBuilder) WithSlug(slug string) *BookBuilder {
	b.slug = slug
	return b
}

func (b *BookBuilder) WithImageURL(url string) *BookBuilder {
	b.imageURL = &url
	return b
}

func (b *BookBuilder) Unpublished() *BookBuilder {
	b.published = false
	return b
}

func (b *BookBuilder) Build(t *testing.T, db *gorm.DB) *domain.Book {
	t.Helper()

	book := &domain.Book{
		ID:        uuid.New(),
		Title:     b.title,
		Slug:      b.slug,
		Markdown:  b.markdown,
		HTML:      "<p>A book about testing.</p>",
		ImageURL:  b.imageURL,
		Published: b.published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book: %v", err)
	}

	return book
}
