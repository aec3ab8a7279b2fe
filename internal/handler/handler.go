package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/machzaul/Tubes-Pemweb/pkg/errors"
)

// respondError maps an application error onto the wire: its HTTP status, its
// message, and the aggregated detail list when one exists.
func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	if details := apperrors.Details(err); len(details) > 0 {
		body["details"] = details
	}
	c.JSON(apperrors.StatusCode(err), body)
}
