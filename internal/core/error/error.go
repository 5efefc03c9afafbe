package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal system error"
	// GenerationErrorMessage describes failures of the draft language model call.
	GenerationErrorMessage = "draft generation unavailable"
	// PublishErrorMessage describes failures writing the HTML report artifact.
	PublishErrorMessage = "report publish failed"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
)

// ErrNoConvergence is returned when the revise loop exhausts its configured
// revision budget without reaching a perfect evaluation.
var ErrNoConvergence = errors.New("could not converge: revision limit reached without a perfect evaluation")

// AppError wraps an underlying error with a status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapGeneration wraps a draft-model failure. Generation-path failures are
// fatal for the run: there is no recovery once the model cannot produce text.
func WrapGeneration(err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Err:     err,
		Status:  http.StatusBadGateway,
		Message: GenerationErrorMessage,
	}
}

// WrapPublish wraps a report write failure. The HTML report is the run's only
// durable artifact, so publish failures abort the run.
func WrapPublish(err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Err:     err,
		Status:  http.StatusInternalServerError,
		Message: PublishErrorMessage,
	}
}

// WrapRedis wraps a Redis error with a consistent status code and message.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Err:     err,
		Status:  http.StatusBadGateway,
		Message: RedisErrorMessage,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
