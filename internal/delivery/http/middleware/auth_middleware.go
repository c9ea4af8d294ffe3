package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JawherBalti/HiredIn-Back/config"
	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/auth"
	"github.com/JawherBalti/HiredIn-Back/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware accepts HS256 tokens signed with JWT_SECRET and RS256
// tokens resolved through JWKS. The sub claim is the numeric user id.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, userUC domain.UserUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.JWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})
		if err != nil || !token.Valid {
			logger.Log.Debug("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}
		sub, _ := claims.GetSubject()
		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, "Invalid subject", nil)
			c.Abort()
			return
		}

		// the token must map to a known user
		user, err := userUC.GetCurrentUser(c.Request.Context(), domain.Actor{UserID: userID})
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)

		c.Next()
	}
}

// bearerToken reads the Authorization header. EventSource cannot set
// headers, so the stream endpoint may pass access_token instead.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
		return ""
	}
	if strings.HasSuffix(c.FullPath(), "/stream") {
		return c.Query("access_token")
	}
	return ""
}

// CurrentActor returns the identity set by AuthMiddleware
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id, ok := c.Get(string(domain.KeyUserID))
	if !ok {
		return domain.Actor{}, false
	}
	userID, ok := id.(int64)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Email: c.GetString(string(domain.KeyUserEmail))}, true
}
