package user

import (
	"context"
	"strings"

	"halo/models"
	"halo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// signupRoles are the roles a user may pick for themselves. Doctors are
// created through the patient application flow; admins are provisioned.
var signupRoles = map[models.Role]bool{
	models.RolePatient: true,
	models.RoleUser:    true,
}

// Signup creates the user (and patient record for patients), sends the
// verification email and opens a session.
func (s *DefaultUserService) Signup(ctx context.Context, req models.SignupRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Role == "" || req.Username == "" {
		return nil, utils.NewInvalidRequest("All fields are required to complete the signup.")
	}
	if !signupRoles[req.Role] {
		return nil, utils.NewInvalidRequest("Unsupported role.")
	}

	if _, err := s.Users.GetByEmail(ctx, req.Email); err == nil {
		return nil, utils.NewInvalidRequest("Email already registered.")
	} else if !utils.IsKind(err, utils.KindNotFound) {
		return nil, err
	}
	if req.Role == models.RolePatient {
		if _, err := s.Patients.GetByUsername(ctx, req.Username); err == nil {
			return nil, utils.NewInvalidRequest("Username already in use.")
		} else if !utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternal("failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Verified:     false,
		Role:         req.Role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	if req.Role == models.RolePatient {
		patient := &models.Patient{
			ID:       uuid.New().String(),
			UserID:   user.ID,
			Username: req.Username,
		}
		if err := s.Patients.Create(ctx, patient); err != nil {
			if delErr := s.Users.Delete(ctx, user.ID); delErr != nil {
				utils.GetLogger().Error("failed to roll back user after patient creation failed",
					zap.String("userId", user.ID), zap.Error(delErr))
			}
			return nil, err
		}
	}

	verifyToken, err := s.Tokens.GenerateToken(user.ID, utils.PurposeVerifyEmail, s.VerifyTokenTTL)
	if err != nil {
		return nil, err
	}
	subject, html, err := s.Templates.Welcome(verifyToken)
	if err != nil {
		return nil, utils.NewInternal("failed to render verification email", err)
	}
	if err := s.Mailer.Send(ctx, models.EmailPayload{To: user.Email, Subject: subject, HTML: html}); err != nil {
		utils.GetLogger().Error("failed to send verification email", zap.String("userId", user.ID), zap.Error(err))
		return nil, utils.NewInternal("Failed to send verification email.", err)
	}

	return s.issueSession(user)
}

func (s *DefaultUserService) issueSession(user *models.User) (*AuthResponse, error) {
	token, err := s.Tokens.GenerateToken(user.ID, utils.PurposeSession, s.SessionTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: token, ExpiresAt: timeNow().Add(s.SessionTTL)}, nil
}
