package customsearch

import (
	"errors"
	"fmt"
)

// Kind classifies a failed Fetch.
type Kind int

const (
	// KindTransport covers network errors, timeouts and cancellations.
	KindTransport Kind = iota + 1
	// KindStatus is a non-2xx HTTP response.
	KindStatus
	// KindDecode is a body that is not the expected JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is against an *Error.
var (
	ErrTransport = errors.New("customsearch: transport failure")
	ErrStatus    = errors.New("customsearch: unexpected status")
	ErrDecode    = errors.New("customsearch: undecodable response")
)

// Error describes why a Fetch produced no response.
type Error struct {
	Kind       Kind
	StatusCode int
	// Message is the API supplied message for status errors, if any.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("customsearch: status %d: %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("customsearch: status %d", e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("customsearch: %s failure: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("customsearch: %s failure", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}
