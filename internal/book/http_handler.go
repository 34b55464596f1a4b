package book

import (
	"errors"
	"log"
	"net/http"

	"bookcatalog/internal/httpx"

	"github.com/go-chi/chi/v5"
)

const (
	msgNotFound = "Book not found"
	msgUpdated  = "Book updated successfully"
	msgDeleted  = "Book deleted successfully"
)

// ListResponse is the body of GET /books.
type ListResponse struct {
	Count int    `json:"count"`
	Data  []Book `json:"data"`
}

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Routes mounts the book endpoints relative to the router's prefix.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param book body Input true "Book fields"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// List handles GET /books
// @Summary List all books
// @Tags books
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ListResponse{Count: len(books), Data: books})
}

// Get handles GET /books/{id}
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Update handles PUT /books/{id}
// @Summary Replace a book's fields
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body Input true "Book fields"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, msgUpdated)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, msgDeleted)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
	case errors.As(err, &verr):
		if verr.Err != nil {
			httpx.JSONError(w, http.StatusBadRequest, verr.Error(), nil)
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, RequiredFieldsMessage, verr.Fields)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, msgNotFound, nil)
	default:
		log.Printf("book request failed: method=%s path=%s request_id=%s error=%v",
			r.Method, r.URL.Path, httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func decodeErr(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return &ValidationError{Err: err}
}
