package user

import (
	"context"
	"time"

	"halo/database/repository"
	"halo/models"
	"halo/services/notification"
	"halo/utils"
)

type UserService interface {
	// Accounts
	Signup(ctx context.Context, req models.SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest, alreadyLoggedIn bool) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	DeleteAccount(ctx context.Context, userID, password, token string) error

	// Email verification and password recovery
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, userID string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error

	// Session checks used by middleware
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// Admin
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetAllPatients(ctx context.Context) ([]models.PatientAccount, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthResponse is returned to the client after signup or login.
type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"-"`
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Users     repository.UserRepository
	Patients  repository.PatientRepository
	Tokens    *utils.JWTManager
	Revoked   utils.RevocationStore
	Mailer    notification.Mailer
	Templates notification.Templates

	SessionTTL     time.Duration
	VerifyTokenTTL time.Duration
	ResetTokenTTL  time.Duration
}
