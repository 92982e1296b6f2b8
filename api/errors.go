package api

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed is matched by every error a generator returns.
// Callers that do not care why generation failed only need errors.Is against it.
var ErrGenerationFailed = errors.New("generation failed")

// ErrorKind classifies why a generation call failed
type ErrorKind int

const (
	// KindTransport means no response reached the client (DNS, connection, body read)
	KindTransport ErrorKind = iota + 1
	// KindRemote means the service answered with a non-2xx status
	KindRemote
	// KindEmptyResult means the service answered 2xx without usable text
	KindEmptyResult
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindEmptyResult:
		return "empty_result"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// GenerationError is the single error type returned by generators.
// Its message is deliberately generic; the distinguishing detail lives in the fields.
type GenerationError struct {
	// Provider names the backend, e.g. "cohere"
	Provider string
	Kind     ErrorKind
	// StatusCode is set for KindRemote
	StatusCode int
	// Detail is the diagnostic text that was logged (error message or payload)
	Detail string
	// Err is the underlying cause, if any
	Err error
}

func (e *GenerationError) Error() string {
	if e.Provider == "" {
		return ErrGenerationFailed.Error()
	}
	return e.Provider + ": " + ErrGenerationFailed.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// KindOf reports the ErrorKind carried by err, or 0 if err is not a *GenerationError
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return 0
}
