package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

type contextKey string

const principalKey = contextKey("principal")

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   int
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// PrincipalFromClaims reads the claims written by GenerateToken.
func PrincipalFromClaims(claims jwt.MapClaims) Principal {
	var p Principal
	if sub, ok := claims["sub"].(float64); ok {
		p.UserID = int(sub)
	}
	p.Username, _ = claims["username"].(string)
	p.Role, _ = claims["role"].(string)
	return p
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
