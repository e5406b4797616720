package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"halo/models"
	"halo/services/booking"
	"halo/services/user"
	"halo/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubUserService implements the account calls exercised here. Other methods panic via the nil
// embedded interface.
type stubUserService struct {
	user.UserService
	loginFlag  bool
	loggedOut  string
	signupResp *user.AuthResponse
	err        error
}

func (s *stubUserService) Signup(_ context.Context, _ models.SignupRequest) (*user.AuthResponse, error) {
	return s.signupResp, s.err
}

func (s *stubUserService) Login(_ context.Context, _ models.LoginRequest, alreadyLoggedIn bool) (*user.AuthResponse, error) {
	s.loginFlag = alreadyLoggedIn
	if alreadyLoggedIn {
		return nil, utils.NewForbidden("You are already logged in.")
	}
	return s.signupResp, s.err
}

func (s *stubUserService) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return nil
}

func (s *stubUserService) VerifyEmail(_ context.Context, _ string) error {
	return s.err
}

type stubBooking struct {
	booking.BookingService
	gotPatient  string
	gotRole     models.Role
	gotIdentity string
	err         error
}

func (s *stubBooking) BookAppointment(_ context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error) {
	s.gotPatient = patientID
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{ID: "a-1", PatientID: patientID, DoctorID: req.DoctorID, Status: models.StatusConfirmed}, nil
}

func (s *stubBooking) UpdateAppointmentStatus(_ context.Context, id string, role models.Role, identityID string, status models.AppointmentStatus) (*models.Appointment, error) {
	s.gotRole = role
	s.gotIdentity = identityID
	return &models.Appointment{ID: id, Status: status}, nil
}

func withIdentity(role models.Role, userID, doctorID, patientID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Set("doctorID", doctorID)
		c.Set("patientID", patientID)
		c.Next()
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "token" {
			return ck
		}
	}
	return nil
}

func TestSignupSetsSessionCookie(t *testing.T) {
	svc := &stubUserService{signupResp: &user.AuthResponse{
		User:      &models.User{ID: "u-1", Email: "a@b.co", Role: models.RolePatient},
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	h := NewUserHandler(svc)
	r := gin.New()
	r.POST("/signup", h.SignupHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"a@b.co","password":"pw","role":"Patient","username":"ann"}`)))

	require.Equal(t, http.StatusCreated, w.Code)
	ck := sessionCookie(t, w)
	require.NotNil(t, ck)
	assert.Equal(t, "tok", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.NotContains(t, w.Body.String(), "tok\"")
}

func TestSignupMapsServiceErrors(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: utils.NewInvalidRequest("Email already exists.")})
	r := gin.New()
	r.POST("/signup", h.SignupHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"a@b.co"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists.")
}

func TestLoginWithExistingCookieIsForbidden(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	r := gin.New()
	r.POST("/login", h.LoginHandler)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"pw"}`))
	req.AddCookie(&http.Cookie{Name: "token", Value: "old"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, svc.loginFlag)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogout(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	r := gin.New()
	r.GET("/logout", h.LogoutHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "live"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "live", svc.loggedOut)
	ck := sessionCookie(t, w)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
}

func TestVerifyEmailExpiredIsGone(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: utils.NewExpired("Verification link has expired.")})
	r := gin.New()
	r.GET("/verify/:token", h.VerifyEmailHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/abc", nil))
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestBookAppointmentUsesResolvedPatient(t *testing.T) {
	svc := &stubBooking{}
	h := NewAppointmentHandler(svc)
	r := gin.New()
	r.POST("/book", withIdentity(models.RolePatient, "u-1", "", "p-1"), h.BookAppointmentHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/book",
		strings.NewReader(`{"doctorId":"d-1","date":"2030-01-02","startTime":"9:00","endTime":"10:00"}`)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "p-1", svc.gotPatient)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestBookAppointmentErrorStatuses(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{utils.NewNotFound("Doctor not found"), http.StatusNotFound},
		{utils.NewInvalidRequest("requested time slot is not available"), http.StatusBadRequest},
		{utils.NewConflict("slot has already been booked"), http.StatusConflict},
		{utils.NewStorageError("failed to create appointment", assert.AnError), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		h := NewAppointmentHandler(&stubBooking{err: tt.err})
		r := gin.New()
		r.POST("/book", withIdentity(models.RolePatient, "u-1", "", "p-1"), h.BookAppointmentHandler)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(`{"doctorId":"d-1"}`)))
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
	}
}

func TestUpdateStatusPicksIdentityByRole(t *testing.T) {
	svc := &stubBooking{}
	h := NewAppointmentHandler(svc)
	r := gin.New()
	r.PATCH("/doc/:appointmentId/status", withIdentity(models.RoleDoctor, "u-1", "d-9", ""), h.UpdateStatusHandler)
	r.PATCH("/pat/:appointmentId/status", withIdentity(models.RolePatient, "u-2", "", "p-9"), h.UpdateStatusHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/doc/a-1/status", strings.NewReader(`{"status":"completed"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleDoctor, svc.gotRole)
	assert.Equal(t, "d-9", svc.gotIdentity)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/pat/a-1/status", strings.NewReader(`{"status":"cancelled"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p-9", svc.gotIdentity)
}

func TestHealthHandlerReportsDegraded(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthHandler)

	// No check has run yet, so nothing is reported healthy.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}
