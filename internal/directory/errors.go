package directory

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is a failure to produce a response: the request could not be
	// built (for example a malformed base URL) or the transport failed.
	ErrNetwork = errors.New("directory: network error")
	// ErrRemote is a response with a status other than 200.
	ErrRemote = errors.New("directory: unexpected status")
	// ErrDecode is a 200 whose body is not a valid directory entry, or an
	// entry for a different id than the one fetched.
	ErrDecode = errors.New("directory: malformed response")
	// ErrServerRejected is a well-formed entry with success=false.
	ErrServerRejected = errors.New("directory: request rejected")
	// ErrTokenDecode is an entry whose token is not valid base64 or not a usable token.
	ErrTokenDecode = errors.New("directory: invalid token")
)

// StatusError carries the status of a non-200 response. It matches ErrRemote.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directory %s %s: %s", e.Method, e.URL, e.Status)
}

// Is makes errors.Is(err, ErrRemote) hold for every StatusError.
func (e *StatusError) Is(target error) bool { return target == ErrRemote }

// outcome labels an error for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrRemote):
		return "remote"
	case errors.Is(err, ErrServerRejected):
		return "rejected"
	case errors.Is(err, ErrTokenDecode):
		return "token"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "error"
	}
}
