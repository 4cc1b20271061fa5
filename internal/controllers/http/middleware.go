package http

import (
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireSession rejects admin requests without a valid session token.
func RequireSession(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(auth.SessionCookie)
		valid, err := authSvc.Check(c.Request.Context(), token)
		if err != nil {
			log.Printf("session check: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"success": false, "error": "session check failed"})
			return
		}
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "error": "authentication required"})
			return
		}
		c.Next()
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, err)
			return
		}
		respondError(c, err)
		return
	}
	c.SetCookie(auth.SessionCookie, token, int(h.auth.SessionTTL().Seconds()), "/", "", false, true)
	ok(c, gin.H{"message": "login successful"})
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(auth.SessionCookie)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	ok(c, gin.H{"message": "logged out"})
}

func (h *Handler) CheckSession(c *gin.Context) {
	token, _ := c.Cookie(auth.SessionCookie)
	valid, err := h.auth.Check(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"authenticated": valid})
}
