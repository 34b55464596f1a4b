package book

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	PublishYear int       `json:"publishYear"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the client-supplied part of a book, used for both create and update.
type Input struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	PublishYear int    `json:"publishYear" validate:"required"`
}

// RequiredFieldsMessage is reported to clients whenever a payload is incomplete.
const RequiredFieldsMessage = "Send all required fields: title, author, publishYear"

// ValidationError reports a payload that is missing required fields or cannot be decoded.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError wraps a failure of the persistence layer. Its message is the
// underlying error text, unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
