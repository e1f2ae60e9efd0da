package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/sweet-shop/internal/http"
	handler "github.com/rogerio-castellano/sweet-shop/internal/http/handlers"
	rl "github.com/rogerio-castellano/sweet-shop/internal/http/rate_limiter"
)

func TestRegisterHandler(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name  string
		creds handler.CredentialsRequest
		code  int
	}{
		{name: "valid", creds: handler.CredentialsRequest{Username: "newbie", Password: "candy123"}, code: http.StatusCreated},
		{name: "duplicate", creds: handler.CredentialsRequest{Username: "newbie", Password: "candy123"}, code: http.StatusConflict},
		{name: "missing password", creds: handler.CredentialsRequest{Username: "nopass"}, code: http.StatusBadRequest},
		{name: "too short", creds: handler.CredentialsRequest{Username: "ab", Password: "123"}, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/register", "", tt.creds)
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
			if tt.code != http.StatusCreated {
				return
			}

			var resp handler.RegisterResult
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Token == "" {
				t.Fatal("expected a token for the new user")
			}
			if w := doJSON(r, http.MethodGet, "/api/sweets", resp.Token, nil); w.Code != http.StatusOK {
				t.Errorf("expected the new token to list sweets, got %d", w.Code)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name     string
		username string
		password string
		code     int
		role     string
	}{
		{name: "admin", username: "admin", password: "secret", code: http.StatusOK, role: "admin"},
		{name: "user", username: "buyer", password: "sweet-tooth", code: http.StatusOK, role: "user"},
		{name: "wrong password", username: "admin", password: "nope", code: http.StatusUnauthorized},
		{name: "unknown user", username: "ghost", password: "secret", code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/login", "", handler.CredentialsRequest{Username: tt.username, Password: tt.password})
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, w.Code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var resp handler.LoginResult
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Role != tt.role || resp.Token == "" {
				t.Errorf("unexpected login result %+v", resp)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := api.NewRouter(api.RouterConfig{Limiter: rl.New(0.001, 2)})

	for i := 0; i < 2; i++ {
		if w := doJSON(r, http.MethodPost, "/api/auth/login", "", handler.CredentialsRequest{}); w.Code == http.StatusTooManyRequests {
			t.Fatalf("request %d limited too early", i+1)
		}
	}
	if w := doJSON(r, http.MethodPost, "/api/auth/login", "", handler.CredentialsRequest{}); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := api.NewRouter(api.RouterConfig{CORSOrigins: []string{"http://shop.test"}})

	req, _ := http.NewRequest(http.MethodOptions, "/api/sweets", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://shop.test" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
}
