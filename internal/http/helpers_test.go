package http_test

import (
	"context"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/sweet-shop/internal/auth"
	"github.com/rogerio-castellano/sweet-shop/internal/cache"
	api "github.com/rogerio-castellano/sweet-shop/internal/http"
	handler "github.com/rogerio-castellano/sweet-shop/internal/http/handlers"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
)

var (
	adminToken string
	userToken  string
	sweetRepo  *repo.InMemorySweetRepository
	listCache  *cache.MemoryCache
)

func init() {
	auth.Configure("handler-test-secret", time.Hour)
	setupTestRepos()
	r := newRouter()

	var err error
	if adminToken, err = generateToken(r, "admin", "secret"); err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	if userToken, err = generateToken(r, "buyer", "sweet-tooth"); err != nil {
		panic(fmt.Sprintf("error generating user token: %v", err))
	}
}

func newRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{})
}

func setupTestRepos() {
	sweetRepo = repo.NewInMemorySweetRepository()
	handler.SetSweetRepo(sweetRepo)

	listCache = cache.NewMemoryCache()
	handler.SetCache(listCache, time.Minute)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	if err := auth.SeedAdmin(userRepo, "admin", "secret"); err != nil {
		panic(err)
	}
	hash, _ := auth.HashPassword("sweet-tooth")
	userRepo.CreateUser(models.User{Username: "buyer", PasswordHash: hash, Role: models.RoleUser})
}

func clearAllSweets() {
	sweetRepo.Clear()
	listCache.Delete(context.Background(), "sweets:all")
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := doJSON(r, http.MethodPost, "/api/auth/login", "", handler.CredentialsRequest{Username: username, Password: password})
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login returned %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSweet(r http.Handler, name, category, price string, qty int) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/sweets", adminToken, map[string]any{
		"name":     name,
		"category": category,
		"price":    json.Number(price),
		"quantity": qty,
	})
}

func decodeSweet(w *httptest.ResponseRecorder) handler.SweetResponse {
	var resp handler.SweetResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field       string `json:"field"`
		Description string `json:"description"`
	} `json:"details"`
}

func decodeError(w *httptest.ResponseRecorder) errorBody {
	var resp errorBody
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}
