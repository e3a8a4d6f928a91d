package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the error envelope: a message and nothing else.
type Body struct {
	Message string `json:"message"`
}

// JSON writes data as-is with the given status
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// NoContent writes a bare status with no body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes {"message": ...}
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{Message: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalServerError never exposes the underlying error
func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}
