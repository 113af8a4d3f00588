package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
)

// Mock auth service for testing
type mockAuthService struct {
	players     map[string]*models.Player
	password    string
	shouldError bool
}

func newMockAuthService() *mockAuthService {
	return &mockAuthService{
		players:  make(map[string]*models.Player),
		password: "hunter2x",
	}
}

func (m *mockAuthService) Register(req *models.RegisterRequest) (*models.Player, error) {
	if m.shouldError {
		return nil, apperrors.InternalError("mock error", nil)
	}
	if _, exists := m.players[req.Email]; exists {
		return nil, apperrors.Conflict("player with this email already exists", nil)
	}
	player := &models.Player{
		ID:          uuid.New(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        string(models.RolePlayer),
	}
	m.players[req.Email] = player
	return player, nil
}

func (m *mockAuthService) Login(email, password string) (*models.LoginResponse, error) {
	player, exists := m.players[email]
	if !exists || password != m.password {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}
	return &models.LoginResponse{Token: "test-token", Player: *player}, nil
}

func (m *mockAuthService) ValidateToken(token string) (*models.Player, error) {
	if token != "test-token" {
		return nil, apperrors.Unauthorized("invalid token", nil)
	}
	for _, p := range m.players {
		return p, nil
	}
	return nil, apperrors.NotFound("player not found", nil)
}

func setupAuthRouter(svc *mockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/api/v1/auth/register", handler.Register)
	r.POST("/api/v1/auth/login", handler.Login)
	r.GET("/api/v1/auth/me", handler.Me)
	return r
}

func TestRegister(t *testing.T) {
	svc := newMockAuthService()
	r := setupAuthRouter(svc)

	body, _ := json.Marshal(models.RegisterRequest{
		Email:       "founder@example.com",
		DisplayName: "Founder",
		Password:    "hunter2x",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Player models.Player `json:"player"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Player.Email != "founder@example.com" {
		t.Errorf("email = %s, want founder@example.com", resp.Player.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newMockAuthService()
	svc.players["founder@example.com"] = &models.Player{Email: "founder@example.com"}
	r := setupAuthRouter(svc)

	body, _ := json.Marshal(models.RegisterRequest{
		Email:       "founder@example.com",
		DisplayName: "Founder",
		Password:    "hunter2x",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	r := setupAuthRouter(newMockAuthService())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	svc := newMockAuthService()
	svc.players["founder@example.com"] = &models.Player{
		ID:    uuid.New(),
		Email: "founder@example.com",
	}
	r := setupAuthRouter(svc)

	body, _ := json.Marshal(models.LoginRequest{
		Email:    "founder@example.com",
		Password: "hunter2x",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token != "test-token" {
		t.Errorf("token = %s, want test-token", resp.Token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newMockAuthService()
	svc.players["founder@example.com"] = &models.Player{Email: "founder@example.com"}
	r := setupAuthRouter(svc)

	body, _ := json.Marshal(models.LoginRequest{
		Email:    "founder@example.com",
		Password: "wrongpass",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMe_BearerToken(t *testing.T) {
	svc := newMockAuthService()
	svc.players["founder@example.com"] = &models.Player{
		ID:    uuid.New(),
		Email: "founder@example.com",
	}
	r := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestMe_MissingToken(t *testing.T) {
	r := setupAuthRouter(newMockAuthService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
