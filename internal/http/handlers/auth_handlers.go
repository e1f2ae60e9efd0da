package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/sweet-shop/internal/auth"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
	"github.com/rogerio-castellano/sweet-shop/pkg/apierror"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} apierror.Error
// @Failure 409 {object} apierror.Error "User exists"
// @Router /api/auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		apierror.BadRequest("invalid input").Write(w)
		return
	}
	creds.Username = strings.TrimSpace(creds.Username)

	if creds.Username == "" || creds.Password == "" {
		apierror.BadRequest("Missing credentials").Write(w)
		return
	}

	if len(creds.Username) < 3 || len(creds.Password) < 6 {
		apierror.BadRequest("username or password too short").Write(w)
		return
	}

	hashed, err := auth.HashPassword(creds.Password)
	if err != nil {
		apierror.Internal("failed to hash password").Write(w)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     creds.Username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			apierror.Conflict("username already exists").Write(w)
			return
		}
		log.Printf("failed to register user: %v", err)
		apierror.Internal("failed to register user").Write(w)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		apierror.Internal("failed to generate token").Write(w)
		return
	}

	log.Printf("👤 user %q registered", user.Username)
	writeJSON(w, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} apierror.Error
// @Failure 401 {object} apierror.Error
// @Router /api/auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := readJSON(w, r, &credentials); err != nil {
		apierror.BadRequest("invalid input").Write(w)
		return
	}

	user, err := userRepo.GetByUsername(strings.TrimSpace(credentials.Username))
	if err != nil {
		if !errors.Is(err, repo.ErrUserNotFound) {
			log.Printf("login lookup failed: %v", err)
		}
		apierror.Unauthorized("invalid credentials").Write(w)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, credentials.Password) {
		apierror.Unauthorized("invalid credentials").Write(w)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		apierror.Internal("could not generate token").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{Token: token, Username: user.Username, Role: user.Role})
}
