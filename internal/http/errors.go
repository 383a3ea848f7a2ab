package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"todo-service/internal/domain"
	"todo-service/internal/service"
)

// status maps a service error to an HTTP status and a client-safe message.
// notFound customises the 404 message per resource.
func (h *Handler) status(err error, notFound string) (int, string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, domain.ErrForbidden):
		if h.opts.LegacyStatusCodes {
			return http.StatusUnauthorized, "Authentication failed"
		}
		return http.StatusForbidden, "Authentication failed"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Incorrect username or password"
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, domain.ErrNotFound):
		if notFound == "" {
			notFound = "Not found"
		}
		return http.StatusNotFound, notFound
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, domain.ErrInvalidInput), errors.As(err, &validationErrs):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "Export storage is not configured"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (h *Handler) fail(c *gin.Context, err error, notFound string) {
	code, msg := h.status(err, notFound)
	if code == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	if code >= http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			requestIDKey: c.GetString(requestIDKey),
			"path":       c.Request.URL.Path,
			"error":      err,
		}).Error("request failed")
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func (h *Handler) abort(c *gin.Context, err error) {
	h.fail(c, err, "")
}
