// Package apierr defines the error taxonomy shared by all backend clients:
// transport, authentication, decode, and server errors. The UI core treats
// every kind identically and only ever renders the message, but tests and
// callers can branch on Kind when needed.
package apierr

import "fmt"

// Kind classifies a backend failure.
type Kind int

const (
	Transport Kind = iota
	Auth
	Decode
	Server
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Auth:
		return "auth"
	case Decode:
		return "decode"
	case Server:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified backend failure. Status and Body are set for Server
// errors; Err carries the underlying cause for Transport and Decode errors.
type Error struct {
	Kind    Kind
	Backend string
	Op      string
	Status  int
	Body    string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Server:
		return fmt.Sprintf("%s %s: status %d - %s", e.Backend, e.Op, e.Status, e.Body)
	case Auth:
		if e.Err != nil {
			return fmt.Sprintf("%s %s: authentication: %v", e.Backend, e.Op, e.Err)
		}
		return fmt.Sprintf("%s %s: not authenticated", e.Backend, e.Op)
	default:
		return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Transportf wraps a connection-level failure.
func Transportf(backend, op string, err error) *Error {
	return &Error{Kind: Transport, Backend: backend, Op: op, Err: err}
}

// Authf wraps an authentication failure.
func Authf(backend, op string, err error) *Error {
	return &Error{Kind: Auth, Backend: backend, Op: op, Err: err}
}

// Decodef wraps a response decoding failure.
func Decodef(backend, op string, err error) *Error {
	return &Error{Kind: Decode, Backend: backend, Op: op, Err: err}
}

// Serverf wraps a non-2xx response.
func Serverf(backend, op string, status int, body string) *Error {
	return &Error{Kind: Server, Backend: backend, Op: op, Status: status, Body: body}
}
