package transport

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching
var (
	ErrNetwork = errors.New("network failure")
	ErrServer  = errors.New("server error")
	ErrDecode  = errors.New("decode failure")
)

// ErrorKind classifies a transport failure
type ErrorKind int

const (
	NetworkFailure ErrorKind = iota
	ServerError
	DecodeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "NetworkFailure"
	case ServerError:
		return "ServerError"
	case DecodeFailure:
		return "DecodeFailure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// TransportError is the single error type surfaced by Client
type TransportError struct {
	Kind       ErrorKind
	Op         string // search, trigger-index or clear-index
	StatusCode int    // HTTP status when a response was received
	Detail     string
	Err        error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.kindText())
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches the sentinel for the error kind
func (e *TransportError) Is(target error) bool {
	switch e.Kind {
	case NetworkFailure:
		return target == ErrNetwork
	case ServerError:
		return target == ErrServer
	case DecodeFailure:
		return target == ErrDecode
	}
	return false
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) kindText() string {
	switch e.Kind {
	case NetworkFailure:
		return "network failure"
	case ServerError:
		return "server error"
	default:
		return "could not decode response"
	}
}
