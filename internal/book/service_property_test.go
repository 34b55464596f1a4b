package book

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"pgregory.net/rapid"
)

func validInput() *rapid.Generator[Input] {
	return rapid.Custom(func(t *rapid.T) Input {
		return Input{
			Title:       rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 ':,.-]{0,40}`).Draw(t, "title"),
			Author:      rapid.StringMatching(`[A-Za-z][A-Za-z .-]{0,30}`).Draw(t, "author"),
			PublishYear: rapid.IntRange(1, 2100).Draw(t, "publishYear"),
		}
	})
}

func TestService_CreatePreservesFieldsAndAssignsUniqueIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		s := NewService(NewMemoryRepository())
		inputs := rapid.SliceOfN(validInput(), 1, 20).Draw(t, "inputs")

		seen := make(map[string]bool)
		for _, in := range inputs {
			b, err := s.Create(ctx, in)
			if err != nil {
				t.Fatalf("create %+v: %v", in, err)
			}
			if b.Title != in.Title || b.Author != in.Author || b.PublishYear != in.PublishYear {
				t.Fatalf("created %+v from %+v", b, in)
			}
			if seen[b.ID] {
				t.Fatalf("id %s issued twice", b.ID)
			}
			seen[b.ID] = true
		}

		books, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(books) != len(inputs) {
			t.Fatalf("expected %d books, got %d", len(inputs), len(books))
		}
	})
}

func TestService_IncompletePayloadNeverMutates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		repo := NewMemoryRepository()
		s := NewService(repo)

		existing, err := s.Create(ctx, validInput().Draw(t, "existing"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		in := validInput().Draw(t, "in")
		switch rapid.SampledFrom([]string{"title", "author", "publishYear"}).Draw(t, "drop") {
		case "title":
			in.Title = ""
		case "author":
			in.Author = ""
		case "publishYear":
			in.PublishYear = 0
		}

		var verr *ValidationError
		if _, err := s.Create(ctx, in); !errors.As(err, &verr) {
			t.Fatalf("create with %+v: expected validation error, got %v", in, err)
		}
		if _, err := s.Update(ctx, existing.ID, in); !errors.As(err, &verr) {
			t.Fatalf("update with %+v: expected validation error, got %v", in, err)
		}

		books, _ := repo.List(ctx)
		if len(books) != 1 || books[0] != existing {
			t.Fatalf("store mutated: %+v", books)
		}
	})
}

func TestService_UnknownIDIsNotFound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		repo := NewMemoryRepository()
		s := NewService(repo)

		for _, in := range rapid.SliceOfN(validInput(), 0, 5).Draw(t, "seed") {
			if _, err := s.Create(ctx, in); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		before, _ := repo.List(ctx)

		id := rapid.OneOf(
			rapid.Just(uuid.NewString()),
			rapid.StringMatching(`[a-z0-9-]{0,24}`),
		).Draw(t, "id")

		if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("get %q: expected ErrNotFound, got %v", id, err)
		}
		if _, err := s.Update(ctx, id, validInput().Draw(t, "in")); !errors.Is(err, ErrNotFound) {
			t.Fatalf("update %q: expected ErrNotFound, got %v", id, err)
		}
		if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("delete %q: expected ErrNotFound, got %v", id, err)
		}

		after, _ := repo.List(ctx)
		if len(after) != len(before) {
			t.Fatalf("store size changed from %d to %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("book %d changed: %+v -> %+v", i, before[i], after[i])
			}
		}
	})
}

func TestService_UpdateThenGetRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		s := NewService(NewMemoryRepository())

		created, err := s.Create(ctx, validInput().Draw(t, "initial"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		next := validInput().Draw(t, "next")
		if _, err := s.Update(ctx, created.ID, next); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := s.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != created.ID || got.Title != next.Title || got.Author != next.Author || got.PublishYear != next.PublishYear {
			t.Fatalf("expected %+v with id %s, got %+v", next, created.ID, got)
		}

		if err := s.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("get after delete: expected ErrNotFound, got %v", err)
		}
	})
}
