package model

import (
	"errors"
	"strings"
)

// ErrorKind classifies a provisioning failure.
type ErrorKind string

const (
	KindConfig             ErrorKind = "config"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindOrgConflict        ErrorKind = "org_conflict"
	KindNotFound           ErrorKind = "not_found"
	KindSwitchFailed       ErrorKind = "switch_failed"
	KindIssueRejected      ErrorKind = "issue_rejected"
	KindIssueMalformed     ErrorKind = "issue_malformed"
	KindUnexpectedResponse ErrorKind = "unexpected_response"
	KindPersistence        ErrorKind = "persistence"
	KindVerification       ErrorKind = "verification"
	KindTransport          ErrorKind = "transport"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrConfig             = &Error{Kind: KindConfig}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrOrgConflict        = &Error{Kind: KindOrgConflict}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrSwitchFailed       = &Error{Kind: KindSwitchFailed}
	ErrIssueRejected      = &Error{Kind: KindIssueRejected}
	ErrIssueMalformed     = &Error{Kind: KindIssueMalformed}
	ErrUnexpectedResponse = &Error{Kind: KindUnexpectedResponse}
	ErrPersistence        = &Error{Kind: KindPersistence}
	ErrVerification       = &Error{Kind: KindVerification}
	ErrTransport          = &Error{Kind: KindTransport}
)

// Error is the single error type crossing component boundaries. Op names the
// operation that failed ("create organization"), Message is the remote or
// local explanation, and Err is the underlying cause if any.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

// NewError builds an Error without an underlying cause.
func NewError(kind ErrorKind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// WrapError builds an Error around err.
func WrapError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return string(e.Kind)
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind. A target carrying an Op, Message or
// cause only matches itself.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Message != "" || t.Err != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
