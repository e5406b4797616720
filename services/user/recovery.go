package user

import (
	"context"
	"strings"

	"halo/models"
	"halo/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// VerifyEmail marks the token's user as verified.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return utils.NewInvalidRequest("Token is required.")
	}
	claims, err := s.Tokens.ParseToken(token, utils.PurposeVerifyEmail)
	if err != nil {
		if utils.IsKind(err, utils.KindExpired) {
			return utils.NewExpired("Verification link expired. Please request a new verification email.")
		}
		return utils.NewInvalidRequest("Invalid or expired verification link.")
	}

	user, err := s.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		return err
	}
	if user.Verified {
		return utils.NewInvalidRequest("Email is already verified.")
	}
	return s.Users.SetVerified(ctx, user.ID, true)
}

// ResendVerification reports true if the user is already verified; otherwise
// a fresh verification link is sent.
func (s *DefaultUserService) ResendVerification(ctx context.Context, userID string) (bool, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.Verified {
		return true, nil
	}

	token, err := s.Tokens.GenerateToken(user.ID, utils.PurposeVerifyEmail, s.VerifyTokenTTL)
	if err != nil {
		return false, err
	}
	subject, html, err := s.Templates.Verification(token)
	if err != nil {
		return false, utils.NewInternal("failed to render verification email", err)
	}
	if err := s.Mailer.Send(ctx, models.EmailPayload{To: user.Email, Subject: subject, HTML: html}); err != nil {
		return false, utils.NewInternal("Failed to send verification email.", err)
	}
	return false, nil
}

// ForgotPassword emails a short-lived reset link.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return utils.NewInvalidRequest("Email is required.")
	}
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.Tokens.GenerateToken(user.ID, utils.PurposeResetPassword, s.ResetTokenTTL)
	if err != nil {
		return err
	}
	subject, html, err := s.Templates.PasswordReset(token)
	if err != nil {
		return utils.NewInternal("failed to render reset email", err)
	}
	if err := s.Mailer.Send(ctx, models.EmailPayload{To: user.Email, Subject: subject, HTML: html}); err != nil {
		utils.GetLogger().Error("failed to send reset email", zap.String("userId", user.ID), zap.Error(err))
		return utils.NewInternal("Failed to send password reset email.", err)
	}
	return nil
}

// ResetPassword sets a new password. Each reset token works once.
func (s *DefaultUserService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return utils.NewInvalidRequest("Password is required.")
	}
	claims, err := s.Tokens.ParseToken(token, utils.PurposeResetPassword)
	if err != nil {
		if utils.IsKind(err, utils.KindExpired) {
			return utils.NewExpired("Reset link expired. Please try resetting your password again.")
		}
		return utils.NewInvalidRequest("Invalid token.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewInternal("failed to hash password", err)
	}

	// Claiming revokes the token atomically, so only one reset can get past here.
	claimed, err := s.Revoked.Claim(ctx, token, claims.ExpiresAt)
	if err != nil {
		return utils.NewInternal("failed to check token", err)
	}
	if !claimed {
		return utils.NewUnauthorized("Token revoked. Please request a new password reset.")
	}

	if err := s.Users.SetPassword(ctx, claims.Subject, string(hash)); err != nil {
		utils.GetLogger().Error("reset token consumed but password not saved",
			zap.String("userId", claims.Subject), zap.Error(err))
		return err
	}
	return nil
}
