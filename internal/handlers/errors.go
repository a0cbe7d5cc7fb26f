package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondValidationError answers 422 for a failed bind. Field errors are
// listed individually; payloads that never reached the validator (bad JSON,
// wrong types) report the bind error message instead.
func respondValidationError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}
	if fieldErrors := ParseValidationErrors(err); len(fieldErrors) > 0 {
		respondErrorWithDetails(c, http.StatusUnprocessableEntity, "Validation failed", fieldErrors, err)
		return
	}
	respondErrorWithDetails(c, http.StatusUnprocessableEntity, "Validation failed", gin.H{"message": err.Error()}, err)
}
