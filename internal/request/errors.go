package request

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching
var (
	ErrEmptyQuery    = errors.New("empty query")
	ErrInvalidCount  = errors.New("invalid count")
	ErrInvalidWeight = errors.New("invalid weight")
)

// ValidationKind identifies why a request was rejected
type ValidationKind int

const (
	EmptyQuery ValidationKind = iota
	InvalidCount
	InvalidWeight
)

func (k ValidationKind) String() string {
	switch k {
	case EmptyQuery:
		return "EmptyQuery"
	case InvalidCount:
		return "InvalidCount"
	case InvalidWeight:
		return "InvalidWeight"
	}
	return fmt.Sprintf("ValidationKind(%d)", int(k))
}

// ValidationError is returned by Build. It never reaches the transport.
type ValidationError struct {
	Kind  ValidationKind
	Field string // set for InvalidCount and InvalidWeight
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyQuery:
		return "empty query: enter something to search for"
	case InvalidCount:
		return "invalid count: must be at least 1"
	case InvalidWeight:
		return fmt.Sprintf("invalid weight %s: must be a finite number >= 0", e.Field)
	}
	return "invalid search request"
}

// Unwrap lets errors.Is match the sentinel for the kind
func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case EmptyQuery:
		return ErrEmptyQuery
	case InvalidCount:
		return ErrInvalidCount
	case InvalidWeight:
		return ErrInvalidWeight
	}
	return nil
}
