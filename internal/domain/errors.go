package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrConfiguration       = errors.New("required configuration is missing")
	ErrUpstream            = errors.New("upstream request failed")
	ErrCarouselUnavailable = errors.New("carousel unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
)

// ValidationError describes caller input that can be fixed and resubmitted.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UpstreamError is a non-success response from the video catalog.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("YouTube API error: %d - %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// CarouselUnavailableError is returned when neither the slot store nor the
// recent-uploads fallback could produce a carousel.
type CarouselUnavailableError struct {
	StoreErr    error
	FallbackErr error
}

func (e *CarouselUnavailableError) Error() string {
	return fmt.Sprintf("carousel unavailable: store: %v; fallback: %v", e.StoreErr, e.FallbackErr)
}

func (e *CarouselUnavailableError) Unwrap() []error {
	return []error{ErrCarouselUnavailable, e.StoreErr, e.FallbackErr}
}
