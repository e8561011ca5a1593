package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hafidmst/qrcafe/internal/profile"
)

// loginHandler exchanges credentials for a bearer session token.
// @Summary Log in
// @Accept json
// @Produce json
// @Param body body profile.LoginRequest true "credentials"
// @Success 200 {object} profile.LoginResponse
// @Failure 401 {object} product.HTTPError
// @Router /auth/login [post]
func loginHandler(svc *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profile.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		resp, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, profile.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// identify resolves the optional bearer token into a profile. Guest requests
// return nil: ordering never requires an account.
func identify(c *gin.Context, svc *profile.Service) *profile.Profile {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil
	}
	p, err := svc.Authenticate(c.Request.Context(), strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return nil
	}
	return p
}

// requireStaff gates management writes to elevated roles.
func requireStaff(svc *profile.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := identify(c, svc)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !profile.Elevated(p.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Set("profile", p)
		c.Next()
	}
}
