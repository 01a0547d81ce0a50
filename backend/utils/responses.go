package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error that knows its HTTP status.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *AppError) Unwrap() error { return e.Err }

// ErrorResponse is the body of every non-AI error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(fiber.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, message, nil)
}

// Internal hides err behind a generic message; err is still logged and traced.
func Internal(message string, err error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, message, err)
}

// StatusOf resolves the response status for err, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// StackOf renders the innermost stack carried by err, if any.
func StackOf(err error) string {
	cause := err
	for cause != nil {
		if s := fmt.Sprintf("%+v", cause); s != cause.Error() {
			return s
		}
		cause = errors.Unwrap(cause)
	}
	return ""
}

// Created sends 201 with data as the body.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// OK sends 200 with data as the body.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}
