package book

import (
	"errors"
	"math"
	"net/http"

	"bookcatalog/internal/httpx"
)

// payload is the wire form of Input. Fields are decoded untyped so that a
// value of the wrong JSON type yields a stable client message.
type payload struct {
	Title       any `json:"title"`
	Author      any `json:"author"`
	PublishYear any `json:"publishYear"`
}

var (
	errTitleType  = errors.New("invalid JSON body: title must be a string")
	errAuthorType = errors.New("invalid JSON body: author must be a string")
	errYearType   = errors.New("invalid JSON body: publishYear must be a number")
	errYearValue  = errors.New("invalid JSON body: publishYear must be a whole number")
)

// decodeInput reads an Input from the request body. Absent or null fields are
// left zero so that Validate reports them as missing.
func decodeInput(r *http.Request) (Input, error) {
	var p payload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		return Input{}, decodeErr(err)
	}
	in, err := p.input()
	if err != nil {
		return Input{}, &ValidationError{Err: err}
	}
	return in, nil
}

func (p payload) input() (Input, error) {
	var in Input
	var ok bool

	if p.Title != nil {
		if in.Title, ok = p.Title.(string); !ok {
			return Input{}, errTitleType
		}
	}
	if p.Author != nil {
		if in.Author, ok = p.Author.(string); !ok {
			return Input{}, errAuthorType
		}
	}
	if p.PublishYear != nil {
		year, err := wholeNumber(p.PublishYear)
		if err != nil {
			return Input{}, err
		}
		in.PublishYear = year
	}
	return in, nil
}

// wholeNumber accepts any JSON number with no fractional part that fits in
// an int64, so 1965 and 1965.0 are the same year.
func wholeNumber(v any) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, errYearType
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errYearValue
	}
	if f < math.MinInt64 || f >= 1<<63 {
		return 0, errYearValue
	}
	return int(f), nil
}
