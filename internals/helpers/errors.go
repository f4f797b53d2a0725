package helper

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// UpstreamError membawa penyebab asli kegagalan DB / blob store.
// Bentuk luarnya tetap *fiber.Error 500 supaya FromFiberError seragam.
type UpstreamError struct {
	Fiber *fiber.Error
	Cause error
}

func (e *UpstreamError) Unwrap() []error { return []error{e.Fiber, e.Cause} }

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Fiber.Message, e.Cause)
}

func ErrValidation(format string, args ...any) error {
	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(format, args...))
}

func ErrNotFound(format string, args ...any) error {
	return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf(format, args...))
}

func ErrConflict(format string, args ...any) error {
	return fiber.NewError(fiber.StatusConflict, fmt.Sprintf(format, args...))
}

func ErrForbidden(format string, args ...any) error {
	return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf(format, args...))
}

func ErrUnauthorized(format string, args ...any) error {
	return fiber.NewError(fiber.StatusUnauthorized, fmt.Sprintf(format, args...))
}

// ErrUpstream mencatat penyebab lalu membungkusnya sebagai 500.
// Error yang sudah *fiber.Error diteruskan apa adanya.
func ErrUpstream(cause error, message string) error {
	if cause == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(cause, &fe) {
		return cause
	}
	log.Printf("[ERROR] %s: %v", message, cause)
	return &UpstreamError{
		Fiber: fiber.NewError(fiber.StatusInternalServerError, message),
		Cause: cause,
	}
}

// StatusOf mengembalikan HTTP status dari error service (0 kalau nil).
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
