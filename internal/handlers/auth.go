package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Credentials is the shared payload for register and login.
type Credentials struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "Credentials"
// @Success      201   {object}  map[string]string  "message"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input Credentials
	if ok := h.bindJSONOrBadRequest(c, &input, "auth_register_bad_body"); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_register_failed", "username", input.Username)
		return
	}

	h.log.Infow("user_registered", "user_id", id)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered"})
}

// @Summary      Log in and obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input Credentials
	if ok := h.bindJSONOrBadRequest(c, &input, "auth_login_bad_body"); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_login_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
