package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetUserBySessionID resolves a session to its owning user in a single joined
// query. Expired sessions never match, so callers cannot observe a stale row.
func (r *sessionRepository) GetUserBySessionID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Joins("JOIN sessions ON sessions.user_id = users.id").
		Where("sessions.id = ? AND sessions.expires_at > ?", id, time.Now()).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "id = ?", id).Error
}

// DeleteExpired purges the row only when its expiry has passed, so a race with
// a still-valid session cannot delete it.
func (r *sessionRepository) DeleteExpired(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND expires_at <= ?", id, time.Now()).
		Delete(&domain.Session{}).Error
}
