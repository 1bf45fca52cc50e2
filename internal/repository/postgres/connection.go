package postgres

import (
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Article{},
		&domain.Book{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Session: NewSessionRepository(db),
		Article: NewArticleRepository(db),
		Book:    NewBookRepository(db),
	}
}
