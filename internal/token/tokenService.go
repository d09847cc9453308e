package token

import "time"

// TokenService issues and verifies access tokens.
type TokenService interface {
	GenerateAccessToken(userID string, role string, ttl time.Duration) (string, error)
	ParseAccessToken(raw string) (*Claims, error)
}
