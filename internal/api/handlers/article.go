package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/service"
)

const maxTitleLength = 200

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

type CreateArticleRequest struct {
	Title     string `json:"title"`
	Markdown  string `json:"markdown"`
	Published *bool  `json:"published"`
}

type UpdateArticleRequest struct {
	Title     *string `json:"title"`
	Markdown  *string `json:"markdown"`
	Published *bool   `json:"published"`
}

// PublicArticleListItem omits the bodies: the public index only needs
// metadata.
type PublicArticleListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicArticleDetail carries the rendered HTML but never the raw markdown.
type PublicArticleDetail struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func publicListItem(a *domain.Article) PublicArticleListItem {
	return PublicArticleListItem{
		ID:        a.ID.String(),
		Title:     a.Title,
		Slug:      a.Slug,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func publicDetail(a *domain.Article) PublicArticleDetail {
	return PublicArticleDetail{
		ID:        a.ID.String(),
		Title:     a.Title,
		Slug:      a.Slug,
		HTML:      a.HTML,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (h *ArticleHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleService.ListPublished(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.ArticleHandler] list published failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	items := make([]PublicArticleListItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, publicListItem(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": items})
}

func (h *ArticleHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	articleSlug := chi.URLParam(r, "slug")

	article, err := h.articleService.GetPublishedBySlug(r.Context(), articleSlug)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		log.Printf("ERROR [handlers.ArticleHandler] get by slug failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"article": publicDetail(article)})
}

func (h *ArticleHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleService.ListAll(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.ArticleHandler] admin list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if articles == nil {
		articles = []*domain.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	article, err := h.articleService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		log.Printf("ERROR [handlers.ArticleHandler] admin get failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" || len(req.Title) > maxTitleLength {
		writeError(w, http.StatusBadRequest, "title must be between 1 and 200 characters")
		return
	}
	if req.Markdown == "" {
		writeError(w, http.StatusBadRequest, "markdown must not be empty")
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	article, err := h.articleService.Create(r.Context(), service.CreateArticleInput{
		Title:     req.Title,
		Markdown:  req.Markdown,
		Published: published,
	})
	if err != nil {
		log.Printf("ERROR [handlers.ArticleHandler] create failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil && (*req.Title == "" || len(*req.Title) > maxTitleLength) {
		writeError(w, http.StatusBadRequest, "title must be between 1 and 200 characters")
		return
	}
	if req.Markdown != nil && *req.Markdown == "" {
		writeError(w, http.StatusBadRequest, "markdown must not be empty")
		return
	}

	article, err := h.articleService.Update(r.Context(), id, service.UpdateArticleInput{
		Title:     req.Title,
		Markdown:  req.Markdown,
		Published: req.Published,
	})
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		log.Printf("ERROR [handlers.ArticleHandler] update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := h.articleService.Delete(r.Context(), id); err != nil {
		log.Printf("ERROR [handlers.ArticleHandler] delete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
