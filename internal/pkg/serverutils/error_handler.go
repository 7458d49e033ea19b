package serverutils

import (
	"errors"

	"notevault-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the business error taxonomy to HTTP statuses in
// one place, so controllers return errors verbatim.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			body := ErrorResponse(fiber.StatusBadRequest, "Validation failed")
			body.Fields = ve.Fields
			return ctx.Status(fiber.StatusBadRequest).JSON(body)
		}

		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			// Do not leak internals; the root cause goes to the logs via
			// fiber's error, not the response body.
			return ctx.Status(status).JSON(ErrorResponse(status, "Internal server error"))
		}
		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNoteNotFound),
		errors.Is(err, apperr.ErrVersionNotFound),
		errors.Is(err, apperr.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrReadPermissionRequired),
		errors.Is(err, apperr.ErrWritePermissionRequired):
		return fiber.StatusForbidden
	case errors.Is(err, apperr.ErrShareExists),
		errors.Is(err, apperr.ErrEmailTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidPermission):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrVersionConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
