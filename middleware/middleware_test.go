package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"halo/models"
	"halo/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	users map[string]*models.User
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, utils.NewUnauthorized("Invalid or expired token.")
}

type fakeDoctors map[string]*models.Doctor

func (f fakeDoctors) GetByUserID(_ context.Context, userID string) (*models.Doctor, error) {
	if d, ok := f[userID]; ok {
		return d, nil
	}
	return nil, utils.NewNotFound("doctor not found")
}

type fakePatients map[string]*models.Patient

func (f fakePatients) GetByUserID(_ context.Context, userID string) (*models.Patient, error) {
	if p, ok := f[userID]; ok {
		return p, nil
	}
	return nil, utils.NewNotFound("patient not found")
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	final := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    UserID(c),
			"role":      string(Role(c)),
			"doctorID":  DoctorID(c),
			"patientID": PatientID(c),
		})
	}
	r.GET("/", append(handlers, final)...)
	return r
}

var testAuth = fakeAuth{users: map[string]*models.User{
	"doc-token":     {ID: "u-doc", Role: models.RoleDoctor},
	"patient-token": {ID: "u-pat", Role: models.RolePatient},
	"orphan-token":  {ID: "u-orphan", Role: models.RoleDoctor},
}}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(testAuth))

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "doc-token"})
		}, http.StatusOK},
		{"bearer", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer patient-token")
		}, http.StatusOK},
		{"unknown token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer nope")
		}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRoleAndIdentity(t *testing.T) {
	doctors := fakeDoctors{"u-doc": {ID: "d-1", UserID: "u-doc"}}
	patients := fakePatients{"u-pat": {ID: "p-1", UserID: "u-pat"}}

	r := newRouter(JWTAuthMiddleware(testAuth), RequireRole(models.RoleDoctor, models.RolePatient), ResolveIdentity(doctors, patients))

	do := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do("doc-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doctorID":"d-1"`)
	assert.Contains(t, w.Body.String(), `"patientID":""`)

	w = do("patient-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"patientID":"p-1"`)

	// A doctor account without a doctor profile cannot act as a doctor.
	w = do("orphan-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(testAuth), RequireRole(models.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer doc-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Other clients have their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
