package auth

import (
	"errors"
	"fmt"
	"log"

	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SeedAdmin creates the admin account when it does not exist yet.
// An empty password skips seeding.
func SeedAdmin(users repo.UserRepository, username, password string) error {
	if username == "" || password == "" {
		log.Println("⚠️ ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	if _, err := users.GetByUsername(username); err == nil {
		return nil
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = users.CreateUser(models.User{Username: username, PasswordHash: hash, Role: models.RoleAdmin})
	if err != nil && !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("👑 Admin user %q ready", username)
	return nil
}
