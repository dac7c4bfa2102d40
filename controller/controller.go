package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assistantia/model"
	"assistantia/service"
)

const userKey = "user"

// statusOf maps the service error taxonomy to transport status codes. This is
// the only place that mapping exists.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrGatewayTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, service.ErrBadGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the JSON error body. Internal errors never leak detail.
func fail(c *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

// currentUser returns the persisted user the auth middleware attached.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(userKey).(*model.User)
}
