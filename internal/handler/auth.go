package handler

import (
	"net/http"

	"aether-be/internal/auth"
	"aether-be/internal/user"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 24 * 60 * 60

type AuthHandler struct {
	BaseHandler
	users         user.Service
	secureCookies bool
}

func NewAuthHandler(users user.Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{users: users, secureCookies: secureCookies}
}

func (h *AuthHandler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, token, sessionMaxAge, "/", "", h.secureCookies, true)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	res, err := h.users.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSession(c, res.Token)
	h.Created(c, authResponse{Token: res.Token, User: res.User})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, bindErrorMessage(err))
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSession(c, res.Token)
	h.Success(c, authResponse{Token: res.Token, User: res.User})
}
