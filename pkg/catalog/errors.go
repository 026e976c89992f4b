package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the query matched no catalog entry.
	ErrNotFound = errors.New("pokemon not found")
	// ErrNetworkOrParse covers transport failures and malformed responses.
	ErrNetworkOrParse = errors.New("catalog request failed")
	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("empty query")
)

// NotFoundError carries the query exactly as the caller supplied it.
type NotFoundError struct {
	Query  string
	Status int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Query)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
