package pokeapi

import (
	"errors"
	"fmt"
)

var ErrEmptySearchTerm = errors.New("empty search term")

var ErrDecodeFailed = errors.New("decode failed")

var ErrNotAnImage = errors.New("not an image")

// NetworkError covers transport failures, timeouts and responses outside 2xx.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s: status %d", e.Url, e.StatusCode)
	}
	return fmt.Sprintf("request %s: %s", e.Url, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr) && networkErr.StatusCode == 404
}
