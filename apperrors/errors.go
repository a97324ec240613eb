package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can map it to a transport status
// without parsing message text.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindState
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindTransient:
		return "transient"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...interface{}) error {
	return &Error{Kind: KindState, Msg: fmt.Sprintf(format, args...)}
}

// Transient wraps an underlying store or network failure. The cause is kept
// for logs; the message is what callers show.
func Transient(msg string, err error) error {
	return &Error{Kind: KindTransient, Msg: msg, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsState(err error) bool      { return KindOf(err) == KindState }
func IsTransient(err error) bool  { return KindOf(err) == KindTransient }
