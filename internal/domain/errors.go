package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrAlreadySubmitted  = errors.New("booking already submitted")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrBadCriteria       = errors.New("bad search criteria")
	ErrUnauthorized      = errors.New("unauthorized")
)

// ErrorKind classifies a user-correctable booking form error.
type ErrorKind string

const (
	RequiredField ErrorKind = "RequiredField"
	InvalidFormat ErrorKind = "InvalidFormat"
	InvalidRange  ErrorKind = "InvalidRange"
	OutOfRange    ErrorKind = "OutOfRange"
)

type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationErrors maps a form field name to its error.
type ValidationErrors map[string]FieldError

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k].Message)
	}
	return "invalid booking: " + strings.Join(parts, "; ")
}

// Messages flattens the errors to field -> message, the shape the form renders.
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for k, fe := range v {
		out[k] = fe.Message
	}
	return out
}
