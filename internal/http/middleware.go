package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"todo-service/internal/domain"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"
)

// requireAuth rejects requests without a valid bearer token before any
// handler touches persistence, and stores the recovered identity.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.abort(c, domain.ErrUnauthenticated)
			return
		}

		identity, err := h.auth.Identify(token)
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				requestIDKey: c.GetString(requestIDKey),
				"error":      err,
			}).Debug("token rejected")
			h.abort(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// requireAdmin must run after requireAuth. The role is read from storage on
// every request so demotions apply without waiting for tokens to expire.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := currentIdentity(c)
		if !ok {
			h.abort(c, domain.ErrUnauthenticated)
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), identity.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			h.abort(c, err)
			return
		}
		if err != nil || !user.IsAdmin() {
			h.abort(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentIdentity(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			requestIDKey: requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if identity, ok := currentIdentity(c); ok {
			fields["user_id"] = identity.UserID
		}

		entry := h.logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("request completed with server error")
		case status >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Info("request completed")
		}
	}
}
