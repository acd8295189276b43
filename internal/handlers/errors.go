package handlers

import (
	"errors"
	"net/http"

	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgInternal           = "internal server error"
	msgInvalidCredentials = "invalid credentials"
	msgInvalidToken       = "invalid token"
	msgTokenExpired       = "token expired"
	msgForbidden          = "forbidden"
	msgInvalidBody        = "invalid request body"
	msgInvalidID          = "invalid id"
)

// statusFor maps service errors to an HTTP status and a client-facing message.
func statusFor(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusBadRequest, service.ErrDuplicateUsername.Error()
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusBadRequest, msgTokenExpired
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusBadRequest, msgInvalidToken
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, service.ErrNotFound.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// respondError writes the mapped error response for err.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code, msg := statusFor(err)
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err, "status", httpCode}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	body := gin.H{"message": userMsg}
	if err != nil && !h.opts.Production {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(httpCode, body)
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any, logKey string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, msgInvalidBody, logKey, err)
		return false
	}
	return true
}
