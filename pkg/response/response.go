// Package response defines the JSON envelope the dashboard front-end
// consumes: code 0 with a data payload on success, the HTTP status code with
// a message on failure. Query results carry the query metadata (selected
// years, unavailable years, matched rows) beside the view payload so the
// front-end can annotate every chart with the dataset slice it rendered.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Query sends a successful query result: the view payload under its own key
// next to the query metadata.
func Query(c *gin.Context, meta interface{}, key string, payload interface{}) {
	OK(c, gin.H{"meta": meta, key: payload})
}

// Error sends a failure envelope with the given HTTP status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Code:    status,
		Message: message,
	})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
