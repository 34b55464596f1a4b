package book

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload and stores a new book.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	b, err := s.repo.Create(ctx, in)
	if err != nil {
		return Book{}, &StorageError{Op: "create", Err: err}
	}
	return b, nil
}

// List returns every stored book. The result is never nil.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	key, ok := normalizeID(id)
	if !ok {
		return Book{}, ErrNotFound
	}
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return Book{}, storageErr("get", err)
	}
	return b, nil
}

// Update validates the payload and overwrites the book's fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	key, ok := normalizeID(id)
	if !ok {
		return Book{}, ErrNotFound
	}
	b, err := s.repo.Update(ctx, key, in)
	if err != nil {
		return Book{}, storageErr("update", err)
	}
	return b, nil
}

// Delete removes a book permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	key, ok := normalizeID(id)
	if !ok {
		return ErrNotFound
	}
	if _, err := s.repo.Delete(ctx, key); err != nil {
		return storageErr("delete", err)
	}
	return nil
}

// normalizeID returns the canonical form of id. Ids that do not parse were
// never issued, so callers treat them as absent.
func normalizeID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func storageErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}
