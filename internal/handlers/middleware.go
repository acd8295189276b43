package handlers

import (
	"errors"
	"net/http"
	"strings"

	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "userId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		h.logAndJSONError(c, http.StatusBadRequest, msgInvalidToken, "auth_bad_header", service.ErrInvalidToken)
		return
	}

	userId, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		msg := msgInvalidToken
		if errors.Is(err, service.ErrTokenExpired) {
			msg = msgTokenExpired
		}
		h.logAndJSONError(c, http.StatusBadRequest, msg, "auth_token_rejected", err)
		return
	}

	// store in Gin context
	c.Set(ctxUserID, userId)
	c.Next()
}

// callerID returns the user id stored by userIdMiddleware.
func callerID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok && id > 0
}

// mustCaller aborts with 401 when the route was reached without the middleware.
func (h *Handler) mustCaller(c *gin.Context) (int, bool) {
	id, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
	}
	return id, ok
}
