package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"hushh-site-backend/config"
	"hushh-site-backend/internal/delivery/http/response"
	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/audit"
	"hushh-site-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuthMiddleware verifies tokens minted by the hosted auth backend
// (Supabase) and gates the back-office routes behind the configured admin
// email allowlist. Sign-in itself happens entirely on the frontend SDK;
// the backend only verifies.
func AdminAuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		allowed[email] = true
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - shared secret
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - JWKS
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
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

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		if !allowed[strings.ToLower(email)] {
			requestID, _ := c.Get("RequestID")
			idStr, _ := requestID.(string)
			audit.Log(audit.Event{
				Event:     audit.EventUnauthorizedAccess,
				Subject:   sub,
				IP:        c.ClientIP(),
				RequestID: idStr,
				Details:   map[string]interface{}{"path": c.FullPath()},
			})
			response.Error(c, http.StatusForbidden, "Admin access required", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Next()
	}
}
