package service

import (
	"errors"
	"fmt"

	"roomfeed/internal/repository"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrUpload     = errors.New("upload rejected")
)

// ValidationError names the request field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func missingField(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// UploadError carries the message shown to the client for a rejected file.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return ErrUpload
}

// NotFoundError keeps the resource specific message for the 404 body.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// fromRepository lifts repository sentinels into service errors.
func fromRepository(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Message: notFound}
	case errors.Is(err, repository.ErrForeignKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}
