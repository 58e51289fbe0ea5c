package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the presentation layer. Every failure of a
// run maps onto exactly one Kind; none of them is retried.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindInvalidCredential Kind = "invalid_credential"
	KindRateLimited       Kind = "rate_limited"
	KindTimeout           Kind = "timeout"
	KindRemote            Kind = "remote"
	KindMalformedOutput   Kind = "malformed_output"
	KindFileIO            Kind = "file_io"
	KindConfig            Kind = "config"
	KindUnknown           Kind = "unknown"
)

// Category groups kinds into the four families a run can fail with.
type Category string

const (
	CategoryCredential Category = "credential"
	CategoryRemote     Category = "remote"
	CategoryOutput     Category = "malformed_output"
	CategoryFileIO     Category = "file_io"
	CategoryOther      Category = "other"
)

// Category returns the failure family of k.
func (k Kind) Category() Category {
	switch k {
	case KindMissingCredential, KindInvalidCredential:
		return CategoryCredential
	case KindRateLimited, KindTimeout, KindRemote:
		return CategoryRemote
	case KindMalformedOutput:
		return CategoryOutput
	case KindFileIO:
		return CategoryFileIO
	default:
		return CategoryOther
	}
}

// AppError represents application-specific errors
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrEmptyDocument = errors.New("document has no extractable text")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Kind:    KindUnknown,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewKindError builds an AppError whose code is derived from kind.
func NewKindError(kind Kind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    codeFor(kind),
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// KindOf reports the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage renders err as the single line shown to a person.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "Processing error: " + err.Error()
	}
	switch appErr.Kind {
	case KindMissingCredential:
		return "API key missing. Set GROQ_API_KEY (or DOCSHEET_LLM_API_KEY) or pass --api-key."
	case KindInvalidCredential:
		return "Invalid API key. Check your key and try again."
	case KindRateLimited:
		return "Rate limit reached. Wait a moment and try again."
	case KindTimeout:
		return "Request timed out. The document might be too large; try a smaller PDF."
	case KindRemote:
		return "AI processing error: " + causeText(appErr)
	case KindMalformedOutput:
		return "The model returned output that is not a JSON array of key/value records: " + causeText(appErr)
	case KindFileIO:
		return "File error: " + causeText(appErr)
	case KindConfig:
		return "Configuration error: " + causeText(appErr)
	default:
		return "Processing error: " + causeText(appErr)
	}
}

func causeText(e *AppError) string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func codeFor(kind Kind) string {
	switch kind {
	case KindMissingCredential, KindInvalidCredential:
		return "CREDENTIAL_ERROR"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindTimeout:
		return "TIMEOUT"
	case KindRemote:
		return "REMOTE_ERROR"
	case KindMalformedOutput:
		return "MALFORMED_OUTPUT"
	case KindFileIO:
		return "FILE_ERROR"
	case KindConfig:
		return "CONFIG_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
