package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
//
// Get, Update and Delete return ErrNotFound when no book has the given id;
// any other error is a storage failure.
type Repository interface {
	Create(ctx context.Context, in Input) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	// Update overwrites title, author and publishYear and returns the stored book.
	Update(ctx context.Context, id string, in Input) (Book, error)
	// Delete removes the book and returns it as it was before removal.
	Delete(ctx context.Context, id string) (Book, error)
}
