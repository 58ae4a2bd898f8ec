// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes a JSON error body with the given status.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RespondWithErrors writes all accumulated messages of a failed
// validation in one body.
func RespondWithErrors(c *gin.Context, code int, messages []string) {
	c.AbortWithStatusJSON(code, gin.H{"errors": messages})
}
