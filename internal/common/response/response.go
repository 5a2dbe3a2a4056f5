package response

import (
	"errors"
	"time"

	"go-support/internal/common/apperr"
	"go-support/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type Metadata struct {
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
	Version   string         `json:"version"`
	Params    map[string]any `json:"params,omitempty"`
}

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Status   Status        `json:"status"`
	Message  string        `json:"message"`
	Data     any           `json:"data,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
	Metadata Metadata      `json:"metadata"`
}

func metadata(c *fiber.Ctx, params map[string]any) Metadata {
	return Metadata{
		Timestamp: time.Now(),
		RequestID: middleware.RequestID(c),
		Version:   "1.0",
		Params:    params,
	}
}

// Success writes a 200 envelope with data.
func Success(c *fiber.Ctx, data any, message string) error {
	return SuccessWithParams(c, data, message, nil)
}

// SuccessWithParams additionally echoes request parameters (pagination,
// search terms) into the envelope metadata.
func SuccessWithParams(c *fiber.Ctx, data any, message string, params map[string]any) error {
	return c.JSON(Envelope{
		Status:   StatusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata(c, params),
	})
}

// Created writes a 201 envelope with data.
func Created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Status:   StatusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata(c, nil),
	})
}

// ErrorHandler renders any error escaping a handler into the envelope.
// Application errors keep their status and code; store connectivity
// failures become 503; fiber errors keep their status; everything else
// is an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		switch {
		case mongo.IsTimeout(err) || mongo.IsNetworkError(err):
			ae = apperr.Unavailable(err)
		default:
			if fe, isFiber := err.(*fiber.Error); isFiber {
				ae = &apperr.Error{Status: fe.Code, Code: apperr.CodeInternal, Message: fe.Message}
			} else {
				ae = apperr.Internal(err)
			}
		}
	}

	return c.Status(ae.Status).JSON(Envelope{
		Status:  StatusError,
		Message: "request failed",
		Errors: []ErrorDetail{
			{Code: ae.Code, Message: ae.Message, Field: ae.Field},
		},
		Metadata: metadata(c, nil),
	})
}
