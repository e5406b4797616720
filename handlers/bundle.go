package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the middleware they depend on.
type HandlerBundle struct {
	// Middleware
	Auth     gin.HandlerFunc
	Identity gin.HandlerFunc

	// User endpoints
	SignupHandler             gin.HandlerFunc
	LoginHandler              gin.HandlerFunc
	LogoutHandler             gin.HandlerFunc
	ProfileHandler            gin.HandlerFunc
	DeleteAccountHandler      gin.HandlerFunc
	ForgotPasswordHandler     gin.HandlerFunc
	ResetPasswordHandler      gin.HandlerFunc
	VerifyEmailHandler        gin.HandlerFunc
	ResendVerificationHandler gin.HandlerFunc

	// Doctor endpoints
	GetDoctorsHandler            gin.HandlerFunc
	GetDoctorsBySpecialtyHandler gin.HandlerFunc
	AddAvailabilityHandler       gin.HandlerFunc
	GetAvailabilityHandler       gin.HandlerFunc
	GetDoctorPatientsHandler     gin.HandlerFunc
	PrescriptionReportHandler    gin.HandlerFunc

	// Appointment endpoints
	BookAppointmentHandler     gin.HandlerFunc
	PatientAppointmentsHandler gin.HandlerFunc
	DoctorAppointmentsHandler  gin.HandlerFunc
	UpdateStatusHandler        gin.HandlerFunc

	// Patient endpoints
	PaymentHandler     gin.HandlerFunc
	ApplyDoctorHandler gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler

	HealthHandler gin.HandlerFunc
}
