package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// MessageResponse is the body of confirmations that carry no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response failed: error=%v", err)
	}
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// JSONError writes an error body, optionally naming the offending fields.
func JSONError(w http.ResponseWriter, statusCode int, message string, fields []string) {
	JSON(w, statusCode, ErrorResponse{Message: message, Fields: fields})
}

// DecodeJSON reads a JSON request body into dst. An empty body leaves dst untouched.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !json.Valid(data) {
		return errors.New("invalid JSON body: malformed JSON")
	}
	// decoder messages name Go types and byte offsets; keep them out of responses
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.New("invalid JSON body: unexpected value type")
	}
	return nil
}
