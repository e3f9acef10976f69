package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is the body of mutating endpoints: a human-readable outcome and,
// when the operation returns one, the resulting record.
type Message struct {
	Message string `json:"message"`
	Record  any    `json:"record,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
