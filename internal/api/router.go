package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rei/cms-backend/internal/api/handlers"
	"github.com/rei/cms-backend/internal/api/middleware"
	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.FrontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	articleHandler := handlers.NewArticleHandler(services.Article)
	bookHandler := handlers.NewBookHandler(services.Book)
	uploadHandler := handlers.NewUploadHandler(services.Upload)

	// Auth routes
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))
		r.Get("/me", authHandler.Me)
	})

	// Public content routes
	r.Get("/articles", articleHandler.ListPublished)
	r.Get("/articles/{slug}", articleHandler.GetPublished)
	r.Get("/books", bookHandler.ListPublished)
	r.Get("/books/{slug}", bookHandler.GetPublished)

	// Admin routes, all behind the auth gate
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Get("/articles", articleHandler.AdminList)
		r.Post("/articles", articleHandler.Create)
		r.Get("/articles/{id}", articleHandler.AdminGet)
		r.Put("/articles/{id}", articleHandler.Update)
		r.Delete("/articles/{id}", articleHandler.Delete)

		r.Post("/books", bookHandler.Create)
		r.Put("/books/{id}", bookHandler.Update)
		r.Delete("/books/{id}", bookHandler.Delete)

		r.Post("/upload-image", uploadHandler.UploadImage)
	})

	return r
}
