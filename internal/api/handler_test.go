package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"petspa-backend/config"
	"petspa-backend/internal/auth"
	"petspa-backend/internal/db"
	"petspa-backend/internal/model"
	"petspa-backend/internal/store"
)

var testDBSeq int

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = 1
	cfg.Auth.BcryptCost = 4
	return cfg
}

func newTestAPI(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDBSeq++
	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared&_busy_timeout=5000", testDBSeq)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	return NewRouter(testConfig(), s), s
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerUser(t *testing.T, r *gin.Engine, email string) (id, token string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Cliente", "email": email, "password": "secret1",
		"phone": "3001234567", "petName": "Rocky", "petType": "Perro",
		"termsAccepted": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.ID, resp.Token
}

// makeAdmin seeds an admin directly in the store and logs in through the API.
func makeAdmin(t *testing.T, r *gin.Engine, s store.Store, email string) (id, token string) {
	t.Helper()
	hash, err := auth.HashPassword("admin123", 4)
	require.NoError(t, err)
	now := time.Now()
	admin := &model.User{
		Name: "Administrador", Email: email, Password: hash, Phone: "300",
		PetName: "Admin Pet", PetType: model.PetTypeDog, PetBreed: "N/A",
		IsAdmin: true, TermsAccepted: true, TermsAcceptedDate: &now,
	}
	require.NoError(t, s.CreateUser(context.Background(), admin))

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	return resp.ID, resp.Token
}

func createService(t *testing.T, r *gin.Engine, adminToken string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/services", adminToken, gin.H{
		"name": "Baño completo", "description": "Baño con secado", "price": 25000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var svc model.Service
	decode(t, w, &svc)
	return svc.ID
}

func TestHealthRoute(t *testing.T) {
	r, _ := newTestAPI(t)
	w := doJSON(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pet Spa API")
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestAPI(t)
	w := doJSON(t, r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Ruta no encontrada")
}

func TestRegisterLoginProfile(t *testing.T) {
	r, _ := newTestAPI(t)

	_, token := registerUser(t, r, "ana@pets.com")

	// Duplicate email is rejected.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Otra", "email": "ana@pets.com", "password": "secret1",
		"phone": "300", "petName": "Max", "petType": "Gato", "termsAccepted": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El usuario ya existe")

	// Login with the right and wrong password.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@pets.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@pets.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Profile round-trip; the password hash must never leak.
	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@pets.com")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")

	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@pets.com", "password": "secret1",
		"phone": "300", "petName": "Rocky", "petType": "Perro",
		"termsAccepted": false,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "términos")

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@pets.com", "password": "abc",
		"phone": "300", "petName": "Rocky", "petType": "Perro",
		"termsAccepted": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "contraseña")

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@pets.com", "password": "secret1",
		"phone": "300", "petName": "Rocky", "petType": "Dinosaurio",
		"termsAccepted": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mascota")
}

func TestServiceAuthorization(t *testing.T) {
	r, s := newTestAPI(t)
	_, userToken := registerUser(t, r, "user@pets.com")
	_, adminToken := makeAdmin(t, r, s, "admin@pets.com")

	// Plain users cannot manage the catalog.
	w := doJSON(t, r, http.MethodPost, "/api/services", userToken, gin.H{
		"name": "X", "description": "Y", "price": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	svcID := createService(t, r, adminToken)

	// Admin partial update flips activity off.
	w = doJSON(t, r, http.MethodPut, "/api/services/"+svcID, adminToken, gin.H{
		"isActive": false,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var svc model.Service
	decode(t, w, &svc)
	assert.False(t, svc.IsActive)
	assert.Equal(t, "Baño completo", svc.Name, "unset fields stay unchanged")
	assert.Equal(t, model.DefaultServiceDuration, svc.Duration)

	// Inactive services are hidden from the public list but fetchable by id.
	w = doJSON(t, r, http.MethodGet, "/api/services", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), svcID)

	w = doJSON(t, r, http.MethodGet, "/api/services/"+svcID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/services/"+svcID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/services/"+svcID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentEndpoints(t *testing.T) {
	r, s := newTestAPI(t)
	_, userToken := registerUser(t, r, "user@pets.com")
	_, otherToken := registerUser(t, r, "other@pets.com")
	_, adminToken := makeAdmin(t, r, s, "admin@pets.com")
	svcID := createService(t, r, adminToken)

	// Availability requires authentication.
	w := doJSON(t, r, http.MethodGet, "/api/appointments/available/2025-06-10", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/appointments/available/2025-06-10", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		AllSlots       []string `json:"allSlots"`
		AvailableSlots []string `json:"availableSlots"`
	}
	decode(t, w, &avail)
	assert.Len(t, avail.AllSlots, 16)
	assert.Equal(t, avail.AllSlots, avail.AvailableSlots)

	// Book a slot.
	w = doJSON(t, r, http.MethodPost, "/api/appointments", userToken, gin.H{
		"service": svcID, "date": "2025-06-10", "time": "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt model.Appointment
	decode(t, w, &appt)
	assert.Equal(t, model.StatusPending, appt.Status)
	require.NotNil(t, appt.Service)
	assert.Equal(t, "Baño completo", appt.Service.Name)

	// The same slot conflicts for anyone.
	w = doJSON(t, r, http.MethodPost, "/api/appointments", otherToken, gin.H{
		"service": svcID, "date": "2025-06-10", "time": "10:30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ocupado")

	// Out-of-window time.
	w = doJSON(t, r, http.MethodPost, "/api/appointments", userToken, gin.H{
		"service": svcID, "date": "2025-06-10", "time": "18:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Strangers cannot read, move or cancel it; the owner and admins can.
	w = doJSON(t, r, http.MethodGet, "/api/appointments/"+appt.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/appointments/"+appt.ID, otherToken, gin.H{"time": "11:00"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/appointments/"+appt.ID, adminToken, gin.H{
		"status": "Confirmada",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/appointments/my", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []model.Appointment
	decode(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, model.StatusConfirmed, mine[0].Status)

	// Cancel and verify the slot frees up.
	w = doJSON(t, r, http.MethodDelete, "/api/appointments/"+appt.ID, userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cita cancelada correctamente")

	w = doJSON(t, r, http.MethodGet, "/api/appointments/available/2025-06-10", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &avail)
	assert.Contains(t, avail.AvailableSlots, "10:30")

	// Unknown appointment id.
	w = doJSON(t, r, http.MethodGet, "/api/appointments/3f6f2a1e-0000-0000-0000-000000000000", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentEndpoints(t *testing.T) {
	r, s := newTestAPI(t)
	_, userToken := registerUser(t, r, "user@pets.com")
	_, otherToken := registerUser(t, r, "other@pets.com")
	_, adminToken := makeAdmin(t, r, s, "admin@pets.com")

	w := doJSON(t, r, http.MethodPost, "/api/comments", userToken, gin.H{
		"text": "Excelente servicio, Rocky quedó hermoso",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment model.Comment
	decode(t, w, &comment)
	require.NotNil(t, comment.User)
	assert.Equal(t, "Cliente", comment.User.Name)

	// Oversized image payloads are rejected.
	w = doJSON(t, r, http.MethodPost, "/api/comments", userToken, gin.H{
		"text": "foto", "image": strings.Repeat("A", model.MaxCommentImageChars+1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "imagen es demasiado grande")

	// Only the owner can edit, admins included.
	w = doJSON(t, r, http.MethodPut, "/api/comments/"+comment.ID, otherToken, gin.H{"text": "editado"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/comments/"+comment.ID, adminToken, gin.H{"text": "editado"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/comments/"+comment.ID, userToken, gin.H{"text": "editado"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Strangers cannot delete; admins can.
	w = doJSON(t, r, http.MethodDelete, "/api/comments/"+comment.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/comments/"+comment.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/comments/"+comment.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	r, s := newTestAPI(t)
	_, userToken := registerUser(t, r, "user@pets.com")
	_, adminToken := makeAdmin(t, r, s, "admin@pets.com")
	svcID := createService(t, r, adminToken)

	w := doJSON(t, r, http.MethodPost, "/api/appointments", userToken, gin.H{
		"service": svcID, "date": "2025-06-10", "time": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Non-admins are locked out.
	for _, path := range []string{"/api/admin/stats", "/api/admin/appointments", "/api/admin/comments", "/api/admin/users"} {
		w = doJSON(t, r, http.MethodGet, path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.DashboardStats
	decode(t, w, &stats)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalAppointments)
	assert.Equal(t, int64(1), stats.TotalServices)

	w = doJSON(t, r, http.MethodGet, "/api/admin/appointments", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var appts []model.Appointment
	decode(t, w, &appts)
	require.Len(t, appts, 1)
	require.NotNil(t, appts[0].User)
	assert.Equal(t, "user@pets.com", appts[0].User.Email)

	w = doJSON(t, r, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
}
