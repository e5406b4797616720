package routes

import (
	"time"

	"halo/config"
	"halo/handlers"
	"halo/middleware"
	"halo/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/user")
	{
		api.POST("/signup", hb.SignupHandler)
		api.POST("/login", hb.LoginHandler)
		api.GET("/logout", hb.LogoutHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
		api.POST("/reset-password/:token", hb.ResetPasswordHandler)
		api.GET("/verify/:token", hb.VerifyEmailHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(hb.Auth)
		protected.GET("/profile", hb.ProfileHandler)
		protected.DELETE("/delete", hb.DeleteAccountHandler)
		protected.POST("/resendVerification", hb.ResendVerificationHandler)
	}
}

// RegisterDoctorRoutes registers doctor directory and doctor-only endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/doctor")
	{
		api.GET("/doctors", hb.GetDoctorsHandler)
		api.GET("/doctors/specialty/:specialty", hb.GetDoctorsBySpecialtyHandler)

		protected := api.Group("")
		protected.Use(hb.Auth, middleware.RequireRole(models.RoleDoctor), hb.Identity)
		protected.POST("/availability", hb.AddAvailabilityHandler)
		protected.GET("/availability", hb.GetAvailabilityHandler)
		protected.GET("/patients", hb.GetDoctorPatientsHandler)
		protected.POST("/prescription-report/:appointmentId", hb.PrescriptionReportHandler)
	}
}

// RegisterAppointmentRoutes registers booking and appointment lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/appointment")
	{
		api.Use(hb.Auth)
		api.POST("/book", middleware.RequireRole(models.RolePatient), hb.Identity, hb.BookAppointmentHandler)
		api.GET("/patient", middleware.RequireRole(models.RolePatient), hb.Identity, hb.PatientAppointmentsHandler)
		api.GET("/doctor", middleware.RequireRole(models.RoleDoctor), hb.Identity, hb.DoctorAppointmentsHandler)
		api.PATCH("/:appointmentId/status",
			middleware.RequireRole(models.RolePatient, models.RoleDoctor), hb.Identity, hb.UpdateStatusHandler)
	}
}

func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/patient")
	{
		api.Use(hb.Auth, middleware.RequireRole(models.RolePatient))
		api.POST("/payment", hb.PaymentHandler)
		api.POST("/applyDoctor", hb.ApplyDoctorHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(hb.Auth, middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/users", hb.AdminHandler.GetAllUsersHandler)
		adminGroup.GET("/patients", hb.AdminHandler.GetAllPatientsHandler)
		adminGroup.DELETE("/delete/user/:id", hb.AdminHandler.DeleteUserHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	health := hb.HealthHandler
	if health == nil {
		health = handlers.HealthHandler
	}
	r.GET("/health", health)
}

// RegisterMetricsRoute exposes Prometheus metrics from the default registry.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origin := config.AppConfig.FrontendURL
	if origin == "" {
		origin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r)
}
