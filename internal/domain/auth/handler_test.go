package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/albumforge/albumforge-api/internal/domain/user"
	"github.com/albumforge/albumforge-api/internal/middleware"
	"github.com/albumforge/albumforge-api/internal/pkg/jwt"
	"github.com/albumforge/albumforge-api/internal/pkg/password"
	"github.com/albumforge/albumforge-api/internal/pkg/response"
)

func newTestRouter(repo user.Repository) http.Handler {
	jwtService := jwt.NewService("secret", time.Hour)
	handler := NewHandler(NewService(repo, jwtService))
	return handler.Routes(middleware.Auth(jwtService))
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestRegisterEndpointCreatesAccount(t *testing.T) {
	router := newTestRouter(&fakeUserRepo{})

	rec := postJSON(t, router, "/register", RegisterRequest{Username: "alice", Password: "password123"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	data, _ := envelope.Data.(map[string]interface{})
	if data["token"] == "" || data["token"] == nil {
		t.Fatal("expected token in response")
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	router := newTestRouter(&fakeUserRepo{})

	rec := postJSON(t, router, "/register", RegisterRequest{Username: "al", Password: "short"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", envelope.Error)
	}
	if _, ok := envelope.Error.Details["username"]; !ok {
		t.Fatalf("expected username field error, got %v", envelope.Error.Details)
	}
	if _, ok := envelope.Error.Details["password"]; !ok {
		t.Fatalf("expected password field error, got %v", envelope.Error.Details)
	}
}

func TestRegisterEndpointConflict(t *testing.T) {
	existing := &user.User{ID: uuid.New(), Username: "alice", PasswordHash: "x", CreatedAt: time.Now()}
	router := newTestRouter(&fakeUserRepo{byUsername: existing, byID: existing})

	rec := postJSON(t, router, "/register", RegisterRequest{Username: "alice", Password: "password123"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	hash, _ := password.Hash("password123")
	u := &user.User{ID: uuid.New(), Username: "bob", PasswordHash: hash, CreatedAt: time.Now()}
	router := newTestRouter(&fakeUserRepo{byUsername: u, byID: u})

	rec := postJSON(t, router, "/login", LoginRequest{Username: "bob", Password: "nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeEndpointRequiresToken(t *testing.T) {
	router := newTestRouter(&fakeUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeEndpointReturnsCurrentUser(t *testing.T) {
	hash, _ := password.Hash("password123")
	u := &user.User{ID: uuid.New(), Username: "bob", PasswordHash: hash, CreatedAt: time.Now()}
	repo := &fakeUserRepo{byUsername: u, byID: u}
	router := newTestRouter(repo)

	login := postJSON(t, router, "/login", LoginRequest{Username: "bob", Password: "password123"})
	if login.Code != http.StatusOK {
		t.Fatalf("login failed: %d", login.Code)
	}
	envelope := decodeEnvelope(t, login)
	data, _ := envelope.Data.(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected token from login")
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	me := decodeEnvelope(t, rec)
	meData, _ := me.Data.(map[string]interface{})
	if meData["username"] != "bob" {
		t.Fatalf("expected username bob, got %v", meData["username"])
	}
}
