package user

import (
	"context"
	"strings"
	"time"

	"halo/models"
	"halo/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var timeNow = time.Now

const invalidCredentials = "Invalid email/username or password."

// Login resolves the user by email, or by patient username, and opens a session.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest, alreadyLoggedIn bool) (*AuthResponse, error) {
	user, err := s.resolveLogin(ctx, req)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.NewUnauthorized(invalidCredentials)
	}
	if alreadyLoggedIn {
		return nil, utils.NewForbidden("You are already logged in. Please log out first to log in with another account.")
	}
	return s.issueSession(user)
}

func (s *DefaultUserService) resolveLogin(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case req.Email != "":
		user, err = s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	case req.Username != "":
		var patient *models.Patient
		patient, err = s.Patients.GetByUsername(ctx, strings.TrimSpace(req.Username))
		if err == nil {
			user, err = s.Users.GetByID(ctx, patient.UserID)
		}
	default:
		return nil, utils.NewUnauthorized(invalidCredentials)
	}
	if utils.IsKind(err, utils.KindNotFound) {
		return nil, utils.NewUnauthorized(invalidCredentials)
	}
	return user, err
}

// Logout revokes the session token for the rest of its lifetime.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return utils.NewInvalidRequest("No token found, user not logged in.")
	}
	return s.revoke(ctx, token, utils.PurposeSession)
}

// revoke blacklists a still-valid token. Already invalid tokens need no revocation.
func (s *DefaultUserService) revoke(ctx context.Context, token string, purpose utils.TokenPurpose) error {
	claims, err := s.Tokens.ParseToken(token, purpose)
	if err != nil {
		return nil
	}
	if err := s.Revoked.Revoke(ctx, token, claims.ExpiresAt); err != nil {
		utils.GetLogger().Error("failed to revoke token", zap.String("userId", claims.Subject), zap.Error(err))
		return utils.NewInternal("failed to revoke token", err)
	}
	return nil
}

// Authenticate validates a session token and loads its user.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, utils.NewUnauthorized("Unauthorized access.")
	}
	claims, err := s.Tokens.ParseToken(token, utils.PurposeSession)
	if err != nil {
		return nil, err
	}
	revoked, err := s.Revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, utils.NewInternal("failed to check token", err)
	}
	if revoked {
		return nil, utils.NewUnauthorized("Token has been revoked.")
	}
	user, err := s.Users.GetByID(ctx, claims.Subject)
	if utils.IsKind(err, utils.KindNotFound) {
		return nil, utils.NewUnauthorized("Unauthorized access.")
	}
	return user, err
}
