package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"fitmap/internal/apperr"
	"fitmap/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code           string             `json:"code"`
	Message        string             `json:"message"`
	Violations     []apperr.Violation `json:"violations,omitempty"`
	AllowedMethods []string           `json:"allowed_methods,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// statusOf maps every error kind to its HTTP status.
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindUnsupportedMediaType:
		return fiber.StatusUnsupportedMediaType
	case apperr.KindMethodNotAllowed:
		return fiber.StatusMethodNotAllowed
	case apperr.KindInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// fromFiber converts errors raised by fiber itself (unknown route, body
// limits) into application errors where a kind exists for them.
func fromFiber(c *fiber.Ctx, fe *fiber.Error) (*apperr.Error, bool) {
	switch fe.Code {
	case fiber.StatusNotFound:
		return apperr.NotFound("resource not found"), true
	case fiber.StatusMethodNotAllowed:
		return apperr.MethodNotAllowed(c.Method()), true
	case fiber.StatusBadRequest:
		return apperr.Validation(fe.Message), true
	case fiber.StatusUnsupportedMediaType:
		return apperr.UnsupportedMediaType(c.Get(fiber.HeaderContentType)), true
	default:
		return nil, false
	}
}

// statusCode renders a status as an error code, e.g. 413 -> "REQUEST_ENTITY_TOO_LARGE".
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses. Internal failures are logged in full and answered with a generic
// message.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		var fe *fiber.Error
		var internals []error
		switch {
		case errors.As(err, &appErr):
			internals = apperr.Internals(err)
		case errors.As(err, &fe):
			converted, ok := fromFiber(c, fe)
			if !ok {
				return writeError(c, fe.Code, statusCode(fe.Code), fe.Message)
			}
			appErr = converted
		default:
			appErr = apperr.Internal(err, "unexpected error")
			internals = []error{err}
		}

		// Joined batch errors answer with their first kind; every internal
		// member is still logged.
		for _, member := range internals {
			log.Error("request failed",
				zap.String("request_id", middleware.RequestIDFrom(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(member),
			)
		}

		status := statusOf(appErr.Kind)
		message := appErr.Message
		if appErr.Kind == apperr.KindInternal {
			message = "internal server error"
		}
		if len(appErr.Allowed) > 0 {
			c.Set(fiber.HeaderAllow, strings.Join(appErr.Allowed, ", "))
		}

		return c.Status(status).JSON(errorPayload{
			RequestID: middleware.RequestIDFrom(c),
			Error: errorEnvelope{
				Code:           appErr.Kind.String(),
				Message:        message,
				Violations:     appErr.Violations,
				AllowedMethods: appErr.Allowed,
			},
		})
	}
}
