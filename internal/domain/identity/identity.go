// Package identity exposes the authenticated caller to the rest of the
// service. Authentication itself happens in an external identity service;
// this package only reads the verified claims the middleware put on the
// request context.
package identity

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

// Actor is the authenticated caller.
type Actor struct {
	UserID  string
	Name    string
	IsAdmin bool
}

// FromContext extracts the caller from the JWT claims placed on the
// context by the auth middleware.
func FromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrInvalidToken
	}

	actor := Actor{UserID: userID}
	if name, ok := claims["name"].(string); ok {
		actor.Name = name
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		actor.IsAdmin = isAdmin
	}
	return actor, nil
}
