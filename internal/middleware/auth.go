package middleware

import (
	"net/http"
	"strings"

	"rapifarma/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token: correo,
// the farmacias the user may operate, and the granted permisos.
type JWTClaims struct {
	UserID    string            `json:"user_id"`
	Correo    string            `json:"correo"`
	Farmacias map[string]string `json:"farmacias"`
	Permisos  []string          `json:"permisos"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
// An expired or invalid token yields 401 — clients clear their session and
// redirect to /login on that status.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequirePermiso rejects requests whose token lacks the named capability.
func RequirePermiso(permiso string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		for _, p := range claims.Permisos {
			if p == permiso {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
	}
}

// RequireFarmacia rejects requests targeting a pharmacy outside the user's
// assigned set. The farmacia id is taken from the named path parameter.
func RequireFarmacia(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		farmaciaID := c.Param(param)
		if _, assigned := claims.Farmacias[farmaciaID]; !assigned {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Farmacia no asignada al usuario"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
