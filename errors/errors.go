package errors

import (
	"fmt"
)

type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode is used when no code is given. It maps to an internal,
// unclassified failure.
var DefaultCode = CodeInternal

type graphError struct {
	code  int
	msg   string
	cause *graphError
}

func (err *graphError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *graphError) Code() int {
	return err.code
}

func (err *graphError) Message() string {
	return err.msg
}

func (err *graphError) Cause() error {
	return err.cause
}

type ErrorEnricher func(error) error

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*graphError); ok {
			gErr.code = code
			return gErr
		}

		// default
		return &graphError{
			msg:   err.Error(),
			code:  code,
			cause: nil,
		}
	}
}

func WithCause(cause error) ErrorEnricher {
	var gCause *graphError
	switch cause := cause.(type) {
	case *graphError:
		gCause = cause
	default:
		gCause = &graphError{msg: cause.Error(), code: DefaultCode, cause: nil}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*graphError); ok {
			gErr.cause = gCause
			return gErr
		}

		return &graphError{
			msg:   err.Error(),
			code:  gCause.code,
			cause: gCause,
		}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error
	err = &graphError{
		msg:   msg,
		code:  DefaultCode,
		cause: nil,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}

// Is reports whether err carries the given code. A plain error only
// matches DefaultCode.
func Is(err error, code int) bool {
	if gErr, ok := err.(Error); ok {
		return gErr.Code() == code
	}
	return err != nil && code == DefaultCode
}
