package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"shiftclock_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// EmployeeIDKey is the gin context key holding the authenticated employee.
const EmployeeIDKey = "employeeID"

// AuthMiddleware creates a gin middleware for JWT authentication
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in the format: Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := ParseToken(jwtSecret, parts[1])
		if err != nil {
			log.Printf("Token validation error: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims.EmployeeID <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token does not identify an employee"})
			c.Abort()
			return
		}

		c.Set(EmployeeIDKey, claims.EmployeeID)
		c.Next()
	}
}

// ParseToken validates an HMAC-signed token and returns its claims.
func ParseToken(jwtSecret []byte, tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GenerateToken signs an access token for employeeID valid for ttl.
func GenerateToken(jwtSecret []byte, employeeID int, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(jwtSecret)
}

// EmployeeID returns the employee set by AuthMiddleware.
func EmployeeID(c *gin.Context) int {
	return c.GetInt(EmployeeIDKey)
}
