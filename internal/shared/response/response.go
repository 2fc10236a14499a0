package response

import (
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes data as the response body without any wrapper.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes a confirmation-only payload ({"message": ...}).
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}
