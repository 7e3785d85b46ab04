package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_manager/internal/services"
)

// respondError maps the service error taxonomy onto HTTP responses. Every
// failure body carries {success:false, error} so form flows can surface the
// message without inspecting the status.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, services.ErrMissingReference):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrBoxAlreadyOpen), errors.Is(err, services.ErrBoxClosed):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}
