package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rei/cms-backend/internal/api"
	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/repository"
	repoPostgres "github.com/rei/cms-backend/internal/repository/postgres"
	"github.com/rei/cms-backend/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_cms"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Article{},
		&domain.Book{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"sessions",
		"users",
		"articles",
		"books",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0", // Random port
		Environment:     "test",
		SessionDuration: 7 * 24 * time.Hour,
		FrontendURL:     "http://localhost:5173",
		AWSRegion:       "us-east-1",
		AWSS3Bucket:     "test-bucket",
	}
}

// FakeObjectPutter records S3 puts instead of performing them.
type FakeObjectPutter struct {
	mu   sync.Mutex
	Err  error
	Keys []string
}

func (f *FakeObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Keys = append(f.Keys, aws.ToString(params.Key))
	return &s3.PutObjectOutput{}, nil
}

// PutKeys returns a copy of the keys recorded so far.
func (f *FakeObjectPutter) PutKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Keys...)
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Putter   *FakeObjectPutter
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	putter := &FakeObjectPutter{}
	services := service.NewServices(repos, cfg, putter)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Putter:   putter,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
