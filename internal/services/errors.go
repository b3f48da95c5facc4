// Package services implements the portal's domain operations on top of the
// backend client: login, registrations, jobs and catalogs.
//
// Every operation returns *Error on failure. Its Message is safe to show to
// the user as is.
package services

import (
	"errors"

	"portalempleos/internal/client"
	"portalempleos/internal/errcodes"
)

// Kind classifies a failed operation
type Kind int

const (
	KindValidation Kind = iota + 1
	KindTransport
	KindApplication
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Error is the single error type returned by domain services
type Error struct {
	Kind     Kind
	Endpoint errcodes.Endpoint
	Code     errcodes.Code // backend code for KindApplication, ConnectionError for transport and parse
	Field    string        // offending field for KindValidation
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a service error from err
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// IsValidation reports whether err was raised before any network call
func IsValidation(err error) bool {
	svcErr, ok := AsError(err)
	return ok && svcErr.Kind == KindValidation
}

func applicationError(endpoint errcodes.Endpoint, code errcodes.Code, description string) *Error {
	return &Error{
		Kind:     KindApplication,
		Endpoint: endpoint,
		Code:     code,
		Message:  errcodes.ResolveMessage(endpoint, code, description),
	}
}

// connectionError wraps transport, token and parse failures. The user only
// ever sees the generic connection message.
func connectionError(endpoint errcodes.Endpoint, err error) *Error {
	kind := KindTransport
	if errors.Is(err, client.ErrParse) {
		kind = KindParse
	}
	return &Error{
		Kind:     kind,
		Endpoint: endpoint,
		Code:     errcodes.ConnectionError,
		Message:  errcodes.MsgConnection,
		Err:      err,
	}
}
