package app

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

// abortWithError answers with the JSON error envelope for code.
func abortWithError(c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, pkg.Response{
		Code:    code,
		Message: statusMessage(code),
		Data:    nil,
	})
}

// statusMessage returns the short lower-case message used in error envelopes.
func statusMessage(code int) string {
	switch code {
	case 400:
		return "bad request"
	case 401:
		return "unauthorized"
	case 404:
		return "not found"
	case 405:
		return "method not allowed"
	case 429:
		return "too many requests"
	case 500:
		return "internal server error"
	default:
		return "error"
	}
}
