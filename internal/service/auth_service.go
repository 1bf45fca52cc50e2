package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/repository"
	"gorm.io/gorm"
)

// AuthService owns the session lifecycle and the login/logout flow. All state
// lives in the database; the service itself holds no mutable state, so it is
// safe under full request parallelism.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	verifier    PasswordVerifier
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, verifier PasswordVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		verifier:    verifier,
		cfg:         cfg,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      *domain.User
	SessionID uuid.UUID
}

// Login verifies the credentials and issues a new session. Unknown email and
// wrong password both come back as domain.ErrInvalidCredentials; a broken
// stored hash does too, but is logged so operators can tell them apart.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.verifier.Verify(input.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, ErrPasswordMismatch) {
			log.Printf("ERROR [service.AuthService] password verification failed for user %s: %v", user.ID, err)
		}
		return nil, domain.ErrInvalidCredentials
	}

	sessionID, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, SessionID: sessionID}, nil
}

// CreateSession persists a fresh session row for the user. The identifier is
// random, so uniqueness holds by construction; there is no collision check.
func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return uuid.Nil, err
	}

	return session.ID, nil
}

// ResolveSession maps a raw cookie value to the owning user, or nil when the
// token is malformed, unknown, or expired. A malformed token never touches the
// database. On a miss the expired row, if that is what caused it, is purged in
// the same pass; the purge is advisory and its failure is swallowed.
func (s *AuthService) ResolveSession(ctx context.Context, token string) *domain.User {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}

	user, err := s.sessionRepo.GetUserBySessionID(ctx, id)
	if err != nil {
		_ = s.sessionRepo.DeleteExpired(ctx, id)
		return nil
	}

	return user
}

// DestroySession deletes the session row. Malformed tokens and already-absent
// rows are no-ops, so logout is always safe to call twice.
func (s *AuthService) DestroySession(ctx context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, id)
}
