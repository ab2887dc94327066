package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"travel-booking/logger"
	"travel-booking/services/transaction"
	"travel-booking/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct checks the `validate` tags of v. Failures are InvalidInput
// errors naming the first offending field.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return transaction.Errorf(transaction.KindInvalidInput, "%s failed on the '%s' rule", strings.ToLower(fe.Field()), fe.Tag())
	}
	return transaction.Errorf(transaction.KindInvalidInput, "invalid request")
}

// ErrorStatus maps a typed error to its HTTP status.
func ErrorStatus(err error) int {
	switch transaction.KindOf(err) {
	case transaction.KindAlreadyDecided, transaction.KindAlreadyPending, transaction.KindSerializationConflict:
		return fiber.StatusConflict
	case transaction.KindNotFound:
		return fiber.StatusNotFound
	case transaction.KindConstraintViolation, transaction.KindInvalidInput:
		return fiber.StatusBadRequest
	case transaction.KindPoolExhausted:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// UserMessage returns the caller safe text for err. Store errors never leak.
func UserMessage(err error) string {
	var te *transaction.Error
	if errors.As(err, &te) {
		return te.UserMessage()
	}
	return "internal server error"
}

// RespondError writes err as an ApiResponse. Unknown failures are logged with
// their cause, typed business outcomes only at warn level.
func RespondError(c *fiber.Ctx, err error) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Errorw("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	} else {
		logger.Warnw("Request rejected", "method", c.Method(), "path", c.Path(), "kind", transaction.KindOf(err).String(), "error", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: UserMessage(err),
		Status:  status,
	})
}

// ParseIDParam reads a positive integer route parameter.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, transaction.Errorf(transaction.KindInvalidInput, "%s must be a positive integer", name)
	}
	return uint(id), nil
}

// ParseDate parses a YYYY-MM-DD query value in the server's location. An empty
// value returns nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, transaction.Errorf(transaction.KindInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	return &d, nil
}

// ParseLimit reads the "limit" query value, 0 when absent.
func ParseLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, transaction.Errorf(transaction.KindInvalidInput, "limit must be a non-negative integer")
	}
	return n, nil
}

// BadRequest writes a 400 for a body that could not be parsed.
func BadRequest(c *fiber.Ctx, err error) error {
	logger.Error("Failed to parse request body", err)
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Message: "Invalid request body",
		Status:  fiber.StatusBadRequest,
	})
}

// Unauthorized writes a 401 for a request whose token carries no usable user id.
func Unauthorized(c *fiber.Ctx, err error) error {
	logger.Warnw("Token without user id", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: "Session expired. Login again.",
		Status:  fiber.StatusUnauthorized,
	})
}

// OK writes a 200 ApiResponse.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusOK,
		Data:    data,
	})
}

// Created writes a 201 ApiResponse.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusCreated,
		Data:    data,
	})
}
