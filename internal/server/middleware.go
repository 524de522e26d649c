package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/config"
	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/store"
)

// Context keys set by the identity middleware.
const (
	ctxUserID       = "user_id"
	ctxGatewayRoles = "gateway_roles"
)

// Auth verifies the shared secret between the chat gateway and this
// service. A missing API_TOKEN disables the check (local development).
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIToken != "" && c.GetHeader("X-Api-Token") != cfg.APIToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api token"})
			return
		}
		c.Next()
	}
}

// Identity extracts the caller identity forwarded by the gateway. The
// gateway has already authenticated the chat user; the core only needs the
// opaque id and the platform role ids.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(ctxUserID, userID)
		c.Set(ctxGatewayRoles, strings.Split(c.GetHeader("X-User-Roles"), ","))
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// RequireElevated allows admins and product owners. Admin status comes
// either from the stored role or from the gateway role matching
// ADMIN_ROLE_ID (platform admins need not be registered users).
func RequireElevated(cfg *config.Config, s *store.Store) gin.HandlerFunc {
	return requireRoles(cfg, s, true)
}

// RequireAdmin allows admins only.
func RequireAdmin(cfg *config.Config, s *store.Store) gin.HandlerFunc {
	return requireRoles(cfg, s, false)
}

func requireRoles(cfg *config.Config, s *store.Store, allowProductOwner bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminRoleID != "" {
			roles, _ := c.Get(ctxGatewayRoles)
			if roleList, ok := roles.([]string); ok {
				for _, r := range roleList {
					if r == cfg.AdminRoleID {
						c.Next()
						return
					}
				}
			}
		}

		user, err := s.GetUser(c.Request.Context(), callerID(c))
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve caller"})
			return
		}

		switch {
		case user.Role == models.RoleAdmin:
			c.Next()
		case allowProductOwner && user.Role == models.RoleProductOwner:
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		}
	}
}
