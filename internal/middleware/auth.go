package middleware

import (
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/logger"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("rejecting bearer token", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware lets the request through if the caller has one of roles.
// Admins always pass.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := user.Role == model.Admin
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware records when an authenticated user was last seen. Writes
// for the same user are spaced at least interval apart.
func ActivityMiddleware(repo UserActivityRepo, interval time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		lastSeen = make(map[uint]time.Time)
	)
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			now := time.Now()
			mu.Lock()
			due := now.Sub(lastSeen[claims.UserID]) >= interval
			if due {
				lastSeen[claims.UserID] = now
			}
			mu.Unlock()

			if due {
				if err := repo.UpdateLastSeen(claims.UserID); err != nil {
					logger.Log.Warn("failed to update last seen", zap.Uint("userId", claims.UserID), zap.Error(err))
				}
			}
		}
		c.Next()
	}
}
