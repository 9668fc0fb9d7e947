package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/gin-gonic/gin"
)

const usernameKey = "username"

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (string, error)
}

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	auth   AuthService
	cookie CookieConfig
}

func NewAuthHandler(auth AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusUnauthorized {
			status, msg = http.StatusBadRequest, "username and password are required"
		}
		if status == http.StatusInternalServerError {
			slog.Error("error registering user", "error", err)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("error logging in", "username", req.Username, "error", err)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, session.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"username": session.Username})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := sessionToken(c, h.cookie.Name)

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		slog.Error("error deleting session", "error", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RequireSession rejects requests without a live session and stores the
// session's username on the gin context.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, h.cookie.Name)

		username, err := h.auth.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, model.ErrInvalidCredentials) {
				slog.Error("error resolving session", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
