package middleware

import (
	"net/http"
	"strings"

	"github.com/gestor-erp/backend/internal/infrastructure/auth"
	"github.com/gestor-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "auth_user_id"
)

const bearerPrefix = "Bearer "

// AuthConfig holds the configuration of the authentication middleware
type AuthConfig struct {
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	// SkipPaths are exact paths served without a token
	SkipPaths []string
	Logger    *zap.Logger
}

// Auth validates the bearer token, rejects revoked sessions and stores the
// claims in the request context
func Auth(cfg AuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing bearer token")
			return
		}
		token := strings.TrimPrefix(header, bearerPrefix)

		claims, err := cfg.JWT.ValidateAccessToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open: a blacklist outage must not take auth down
				if cfg.Logger != nil {
					cfg.Logger.Warn("token revocation check failed", zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, "Session has been signed out")
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetClaims returns the validated claims of the request, if any
func GetClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

// GetUserID returns the authenticated user's id, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(UserIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
