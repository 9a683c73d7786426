// Package apperrors defines the error taxonomy shared by all snipstash
// components. Every failure a caller is expected to handle carries a Kind,
// so command handlers can pick an exit message without string matching.
package apperrors

import (
	"errors"
	"time"
)

// Kind classifies an error into one of the failure categories the CLI
// reports on.
type Kind string

const (
	// KindConfig indicates the config file could not be read, parsed or written.
	KindConfig Kind = "config"
	// KindCredential indicates the OS keyring rejected a store/retrieve/delete.
	KindCredential Kind = "credential"
	// KindCredentialNotFound indicates no token is stored for the server.
	KindCredentialNotFound Kind = "credential_not_found"
	// KindAuthRequired indicates an operation was attempted before login.
	KindAuthRequired Kind = "auth_required"
	// KindValidation indicates a required field was missing or malformed
	// before any request was sent.
	KindValidation Kind = "validation"
	// KindUnauthorized indicates the server rejected the token (HTTP 401).
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound indicates the requested resource does not exist (HTTP 404).
	KindNotFound Kind = "not_found"
	// KindRateLimited indicates the server throttled the request (HTTP 429).
	KindRateLimited Kind = "rate_limited"
	// KindServer indicates a 5xx (or otherwise unexpected) server response.
	KindServer Kind = "server"
	// KindNetwork indicates the request never produced an HTTP response.
	KindNetwork Kind = "network"
)

// Error is the concrete error type used across the client. Message is
// user-facing; Err preserves the underlying cause for errors.Is/As.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// RetryAfter carries the server-provided retry hint for KindRateLimited.
	// Zero when the server sent none.
	RetryAfter time.Duration

	// Status and Body are populated for KindServer responses.
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New returns an Error with the given kind and user-facing message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns an Error with the given kind and message, preserving err
// as the unwrappable cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// RateLimit builds a KindRateLimited error carrying the server's retry hint.
func RateLimit(msg string, retryAfter time.Duration) *Error {
	return &Error{Kind: KindRateLimited, Message: msg, RetryAfter: retryAfter}
}

// Server builds a KindServer error for an unexpected HTTP response.
func Server(status int, msg, body string) *Error {
	return &Error{Kind: KindServer, Message: msg, Status: status, Body: body}
}

// KindOf returns the Kind of err, unwrapping as needed. Errors that do not
// carry a Kind report the empty Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
