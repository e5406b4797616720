package middleware

import (
	"context"
	"strings"

	"halo/models"
	"halo/utils"

	"github.com/gin-gonic/gin"
)

const (
	// TokenCookie is the session cookie set on signup and login.
	TokenCookie = "token"

	ctxUserID  = "userID"
	ctxRole    = "role"
	ctxToken   = "token"
	ctxDoctor  = "doctorID"
	ctxPatient = "patientID"
)

// Authenticator validates a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// TokenFromRequest returns the session token from the cookie or a Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked session.
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			utils.RespondError(c, utils.NewUnauthorized("Unauthorized access."))
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxRole, user.Role)
		c.Set(ctxToken, token)
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func Role(c *gin.Context) models.Role {
	if r, ok := c.Get(ctxRole); ok {
		if role, ok := r.(models.Role); ok {
			return role
		}
	}
	return ""
}

func Token(c *gin.Context) string {
	return c.GetString(ctxToken)
}

func DoctorID(c *gin.Context) string {
	return c.GetString(ctxDoctor)
}

func PatientID(c *gin.Context) string {
	return c.GetString(ctxPatient)
}
