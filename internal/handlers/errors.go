package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"roomfeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ApiError is the JSON error body. Code is left empty for the not found
// responses, which only carry a message.
type ApiError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error,omitempty"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Code:       "bad_request",
		Message:    message,
	}
}

func NewNotFoundError(message string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func NewConflictError(message string, err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusConflict,
		Code:       "conflict",
		Message:    message,
		Err:        err,
	}
}

func NewPayloadTooLargeError(message string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusRequestEntityTooLarge,
		Code:       "payload_too_large",
		Message:    message,
	}
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Code:       "internal_server_error",
		Message:    strings.ToLower(http.StatusText(http.StatusInternalServerError)),
		Err:        err,
	}
}

// toApiError maps service errors onto responses. conflictMsg is what a
// foreign key violation means for the calling endpoint.
func toApiError(err error, conflictMsg string) *ApiError {
	var (
		apiErr      *ApiError
		validation  *service.ValidationError
		upload      *service.UploadError
		notFound    *service.NotFoundError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &validation):
		return NewBadRequestError(validation.Error())
	case errors.As(err, &upload):
		return NewBadRequestError(upload.Message)
	case errors.As(err, &notFound):
		return NewNotFoundError(notFound.Message)
	case errors.Is(err, service.ErrConflict):
		return NewConflictError(conflictMsg, err)
	case errors.As(err, &maxBytesErr):
		return NewPayloadTooLargeError(fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit))
	default:
		return NewInternalServerError(err)
	}
}

func writeError(c *gin.Context, err error, conflictMsg string) {
	apiErr := toApiError(err, conflictMsg)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// bindingError turns a gin binding failure into a 400 naming the first
// offending field.
func bindingError(err error) *ApiError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return NewBadRequestError(fmt.Sprintf("%s is required", fe.Field()))
		}
		return NewBadRequestError(fmt.Sprintf("%s is invalid", fe.Field()))
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return NewPayloadTooLargeError(fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit))
	}

	return NewBadRequestError("invalid request body")
}
