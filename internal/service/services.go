package service

import (
	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Article *ArticleService
	Book    *BookService
	Upload  *UploadService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, s3Client ObjectPutter) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, NewBcryptVerifier(), cfg),
		Article: NewArticleService(repos.Article),
		Book:    NewBookService(repos.Book),
		Upload:  NewUploadService(s3Client, cfg.AWSS3Bucket, cfg.AWSRegion),
	}
}
