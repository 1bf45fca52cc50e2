package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/repository/postgres"
	"github.com/rei/cms-backend/internal/service"
	"github.com/rei/cms-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(testDB *testutil.TestDB) *service.AuthService {
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewAuthService(repos.User, repos.Session, service.NewBcryptVerifier(), testutil.TestConfig())
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService := newAuthService(testDB)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "non-existent email",
			input: service.LoginInput{
				Email:    "nobody@example.com",
				Password: "anypassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEqual(t, uuid.Nil, result.SessionID)

			// The session row must exist and resolve back to the same user.
			resolved := authService.ResolveSession(ctx, result.SessionID.String())
			require.NotNil(t, resolved)
			assert.Equal(t, user.ID, resolved.ID)
		})
	}
}

func TestAuthService_CreateThenResolve(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService := newAuthService(testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	sessionID, err := authService.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	resolved := authService.ResolveSession(ctx, sessionID.String())
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)

	var session domain.Session
	require.NoError(t, testDB.DB.First(&session, "id = ?", sessionID).Error)
	assert.WithinDuration(t, session.CreatedAt.Add(testutil.TestConfig().SessionDuration), session.ExpiresAt, 2*time.Second)
}

func TestAuthService_ResolveExpiredSessionPurgesRow(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService := newAuthService(testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(user.ID).
		ExpiresAt(time.Now().Add(-time.Second)).
		Build(t, testDB.DB)

	resolved := authService.ResolveSession(ctx, session.ID.String())
	assert.Nil(t, resolved)

	// Lazy cleanup fired: the expired row is gone.
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthService_DestroySessionIdempotent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService := newAuthService(testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	sessionID, err := authService.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, authService.DestroySession(ctx, sessionID.String()))
	assert.Nil(t, authService.ResolveSession(ctx, sessionID.String()))

	// Second destroy, never-issued id, and garbage all succeed silently.
	assert.NoError(t, authService.DestroySession(ctx, sessionID.String()))
	assert.NoError(t, authService.DestroySession(ctx, uuid.New().String()))
	assert.NoError(t, authService.DestroySession(ctx, "not-a-token"))
}

// countingSessionRepo verifies that malformed tokens short-circuit before any
// backend round trip.
type countingSessionRepo struct {
	calls int
}

func (r *countingSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	r.calls++
	return nil
}

func (r *countingSessionRepo) GetUserBySessionID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.calls++
	return nil, gorm.ErrRecordNotFound
}

func (r *countingSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls++
	return nil
}

func (r *countingSessionRepo) DeleteExpired(ctx context.Context, id uuid.UUID) error {
	r.calls++
	return nil
}

func TestAuthService_MalformedTokenSkipsBackend(t *testing.T) {
	sessions := &countingSessionRepo{}
	authService := service.NewAuthService(nil, sessions, service.NewBcryptVerifier(), testutil.TestConfig())

	for _, token := range []string{"", "garbage", "123", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"} {
		assert.Nil(t, authService.ResolveSession(context.Background(), token), "token %q", token)
	}

	assert.Zero(t, sessions.calls, "malformed tokens must not reach the repository")
}
