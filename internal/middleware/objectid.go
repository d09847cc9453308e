package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ValidateObjectID answers 404 unless the named path param is a UUID.
// Accepted ids are rewritten to the canonical lower-case dashed form
// that the stores compare against.
func ValidateObjectID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(param))
		if err != nil {
			abortText(c, http.StatusNotFound, "Invalid ID.")
			return
		}
		for i := range c.Params {
			if c.Params[i].Key == param {
				c.Params[i].Value = id.String()
			}
		}
		c.Next()
	}
}
