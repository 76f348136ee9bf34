package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/refhub/referral-tracker/internal/apperrors"
)

// respondError translates service errors into the HTTP taxonomy:
// validation -> 400, conflict -> 409, auth -> 401, not found -> 404,
// everything else -> 500 with detail suppressed outside debug mode.
func respondError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": ve.Fields})
		return
	}
	if ce, ok := apperrors.AsConflict(err); ok {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": ce.Message})
		return
	}
	if errors.Is(err, apperrors.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Candidate not found"})
		return
	}

	body := gin.H{"success": false, "error": "Server error"}
	if gin.Mode() == gin.DebugMode {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
