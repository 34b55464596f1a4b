package book

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process Repository. Books are listed in the
// order they were created.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]Book
	order []string
	now   func() time.Time
}

// NewMemoryRepository constructs a MemoryRepository seeded with the provided books.
// Seed ids are stored in canonical UUID form; an empty or unparseable id is
// replaced with a fresh one, since the service only looks up canonical UUIDs.
func NewMemoryRepository(seed ...Book) *MemoryRepository {
	repo := &MemoryRepository{
		books: make(map[string]Book, len(seed)),
		now:   time.Now,
	}
	for _, b := range seed {
		if id, err := uuid.Parse(b.ID); err == nil {
			b.ID = id.String()
		} else {
			b.ID = uuid.NewString()
		}
		if _, exists := repo.books[b.ID]; !exists {
			repo.order = append(repo.order, b.ID)
		}
		repo.books[b.ID] = b
	}
	return repo
}

func (r *MemoryRepository) Create(_ context.Context, in Input) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	b := Book{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Author:      in.Author,
		PublishYear: in.PublishYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.books[b.ID] = b
	r.order = append(r.order, b.ID)
	return b, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.books[id])
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, in Input) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	b.Title = in.Title
	b.Author = in.Author
	b.PublishYear = in.PublishYear
	b.UpdatedAt = r.now().UTC()
	r.books[id] = b
	return b, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	delete(r.books, id)
	for i, key := range r.order {
		if key == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return b, nil
}
