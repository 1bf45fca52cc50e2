package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/service"
)

type BookHandler struct {
	bookService *service.BookService
}

func NewBookHandler(bookService *service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type CreateBookRequest struct {
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Markdown  string  `json:"markdown"`
	ImageURL  *string `json:"image_url"`
	Published *bool   `json:"published"`
}

type UpdateBookRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Markdown  *string `json:"markdown"`
	ImageURL  *string `json:"image_url"`
	Published *bool   `json:"published"`
}

func (h *BookHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.ListPublished(r.Context())
	if err != nil {
		log.Printf("ERROR [handlers.BookHandler] list published failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if books == nil {
		books = []*domain.Book{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books})
}

func (h *BookHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	bookSlug := chi.URLParam(r, "slug")

	book, err := h.bookService.GetPublishedBySlug(r.Context(), bookSlug)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		log.Printf("ERROR [handlers.BookHandler] get by slug failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"book": book})
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" || req.Slug == "" || req.Markdown == "" {
		writeError(w, http.StatusBadRequest, "title, slug and markdown are required")
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	book, err := h.bookService.Create(r.Context(), service.CreateBookInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Markdown:  req.Markdown,
		ImageURL:  req.ImageURL,
		Published: published,
	})
	if err != nil {
		log.Printf("ERROR [handlers.BookHandler] create failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      book.ID.String(),
		"message": "created",
	})
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book ID")
		return
	}

	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err = h.bookService.Update(r.Context(), id, service.UpdateBookInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Markdown:  req.Markdown,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		log.Printf("ERROR [handlers.BookHandler] update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book ID")
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		log.Printf("ERROR [handlers.BookHandler] delete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
