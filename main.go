package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"halo/config"
	"halo/cron"
	"halo/database"
	"halo/database/repository"
	"halo/handlers"
	"halo/middleware"
	"halo/routes"
	"halo/services/booking"
	"halo/services/notification"
	"halo/services/patient"
	"halo/services/payment"
	"halo/services/user"
	"halo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cacheClient := utils.GetCacheClient()
	authClient := utils.GetAuthCacheClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.Use(middleware.MetricsMiddleware(utils.NewHTTPMetrics(nil)))

	// repositories.
	userRepo := repository.NewMongoUserRepository()
	patientRepo := repository.NewMongoPatientRepository()
	doctorRepo := repository.NewMongoDoctorRepository()
	appointmentRepo := repository.NewMongoAppointmentRepository()
	schedulerRepo := repository.NewMongoSchedulerRepo(database.MongoClient, doctorRepo, appointmentRepo, config.AppConfig.MongoTransactions)

	// outbound email.
	var mailer notification.Mailer = notification.StubMailer{}
	if sg := notification.NewSendGridMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.MailFrom, config.AppConfig.MailFromName); sg != nil {
		mailer = sg
	} else {
		logger.Warn("SENDGRID_API_KEY not set, emails will only be logged")
	}
	var (
		queueClient *asynq.Client
		emailWorker *asynq.Server
	)
	if config.AppConfig.MailAsync {
		emailWorker = cron.InitEmailWorker(mailer)
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		mailer = notification.NewQueuedMailer(queueClient)
	}

	// services.
	userService := &user.DefaultUserService{
		Users:    userRepo,
		Patients: patientRepo,
		Tokens:   utils.NewJWTManager(jwtSecret(logger)),
		Revoked:  utils.NewRedisRevocationStore(authClient),
		Mailer:   mailer,
		Templates: notification.Templates{
			FrontendURL: config.AppConfig.FrontendURL,
			Signature:   config.AppConfig.MailFromName,
		},
		SessionTTL:     config.AppConfig.SessionTTL,
		VerifyTokenTTL: config.AppConfig.VerifyTokenTTL,
		ResetTokenTTL:  config.AppConfig.ResetTokenTTL,
	}

	bookingService := booking.NewDefaultBookingService(
		doctorRepo,
		appointmentRepo,
		patientRepo,
		schedulerRepo,
		utils.NewRedisSlotLocker(cacheClient, config.AppConfig.SlotLockTTL),
		config.ClinicLocation(),
	)
	bookingService.Metrics = utils.NewBookingMetrics(nil)

	patientService := &patient.DefaultPatientService{
		Users:    userRepo,
		Patients: patientRepo,
		Doctors:  doctorRepo,
		Charger:  payment.NewStripeCharger(config.AppConfig.StripeKey, config.AppConfig.PaymentCurrency),
	}

	userHandler := handlers.NewUserHandler(userService)
	doctorHandler := handlers.NewDoctorHandler(bookingService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService)
	patientHandler := handlers.NewPatientHandler(patientService)
	adminHandler := handlers.NewAdminHandler(userService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     middleware.JWTAuthMiddleware(userService),
		Identity: middleware.ResolveIdentity(doctorRepo, patientRepo),

		// User endpoints.
		SignupHandler:             userHandler.SignupHandler,
		LoginHandler:              userHandler.LoginHandler,
		LogoutHandler:             userHandler.LogoutHandler,
		ProfileHandler:            userHandler.ProfileHandler,
		DeleteAccountHandler:      userHandler.DeleteAccountHandler,
		ForgotPasswordHandler:     userHandler.ForgotPasswordHandler,
		ResetPasswordHandler:      userHandler.ResetPasswordHandler,
		VerifyEmailHandler:        userHandler.VerifyEmailHandler,
		ResendVerificationHandler: userHandler.ResendVerificationHandler,

		// Doctor endpoints.
		GetDoctorsHandler:            doctorHandler.GetDoctorsHandler,
		GetDoctorsBySpecialtyHandler: doctorHandler.GetDoctorsBySpecialtyHandler,
		AddAvailabilityHandler:       doctorHandler.AddAvailabilityHandler,
		GetAvailabilityHandler:       doctorHandler.GetAvailabilityHandler,
		GetDoctorPatientsHandler:     doctorHandler.GetDoctorPatientsHandler,
		PrescriptionReportHandler:    doctorHandler.PrescriptionReportHandler,

		// Appointment endpoints.
		BookAppointmentHandler:     appointmentHandler.BookAppointmentHandler,
		PatientAppointmentsHandler: appointmentHandler.PatientAppointmentsHandler,
		DoctorAppointmentsHandler:  appointmentHandler.DoctorAppointmentsHandler,
		UpdateStatusHandler:        appointmentHandler.UpdateStatusHandler,

		// Patient endpoints.
		PaymentHandler:     patientHandler.PaymentHandler,
		ApplyDoctorHandler: patientHandler.ApplyDoctorHandler,

		// Admin endpoints.
		AdminHandler: adminHandler,

		HealthHandler: handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	utils.StartHealthMonitor(monitorCtx, []*redis.Client{cacheClient, authClient}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	if emailWorker != nil {
		emailWorker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close queue client", zap.Error(err))
		}
	}
	utils.CloseRedis()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// jwtSecret returns JWT_SECRET, or a per-process random secret outside production.
func jwtSecret(logger *zap.Logger) string {
	if secret := config.AppConfig.JWTSecret; secret != "" {
		return secret
	}
	if config.IsProduction() {
		logger.Fatal("JWT_SECRET must be set in production")
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatal("failed to generate JWT secret", zap.Error(err))
	}
	logger.Warn("JWT_SECRET not set, using a random secret; sessions will not survive restarts")
	return hex.EncodeToString(buf)
}
