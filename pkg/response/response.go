package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

// Envelope is the uniform response contract shared by every endpoint.
type Envelope struct {
	SuccessFlag   bool                   `json:"success_flag"`
	Data          interface{}            `json:"data,omitempty"`
	Message       string                 `json:"message,omitempty"`
	StatusCode    int                    `json:"status_code"`
	StatusMessage string                 `json:"status_message"`
	ErrorCode     string                 `json:"error_code,omitempty"`
	Meta          map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{
		SuccessFlag:   true,
		Data:          data,
		StatusCode:    status,
		StatusMessage: http.StatusText(status),
	}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Message sends a success response carrying a human-readable message next to the data.
func Message(c *gin.Context, status int, data interface{}, message string) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{
		SuccessFlag:   true,
		Data:          data,
		Message:       message,
		StatusCode:    status,
		StatusMessage: http.StatusText(status),
	})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{
		SuccessFlag:   false,
		Message:       appErr.Message,
		StatusCode:    appErr.Status,
		StatusMessage: http.StatusText(appErr.Status),
		ErrorCode:     appErr.Code,
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
