package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrorBody is the failure payload returned by every endpoint: a timestamp,
// the numeric status, a short category label and a human-readable message.
// Validation failures additionally carry a field-to-message map.
type ErrorBody struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Created writes a 201 with the created resource.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes an empty 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes a failure body with the given label and message.
func Error(c *gin.Context, statusCode int, label, message string) {
	c.JSON(statusCode, ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    statusCode,
		Error:     label,
		Message:   message,
	})
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "Not Found", message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "Bad Request", message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "Internal Server Error", message)
}

// ValidationFailed writes a 400 with the per-field error map when err is an
// ozzo validation.Errors, falling back to a plain message otherwise.
func ValidationFailed(c *gin.Context, err error) {
	body := ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusBadRequest,
		Error:     "Validation Failed",
		Message:   "One or more fields have validation errors",
	}

	if fieldErrs, ok := err.(validation.Errors); ok {
		body.ValidationErrors = make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			body.ValidationErrors[field] = ferr.Error()
		}
	} else {
		body.Message = err.Error()
	}

	c.JSON(http.StatusBadRequest, body)
}
