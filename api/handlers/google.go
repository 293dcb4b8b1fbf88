package handlers

import (
	"context"

	"google.golang.org/api/idtoken"

	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

// GoogleClaims holds the verified claims extracted from a Google ID token
type GoogleClaims struct {
	Email         string
	EmailVerified bool
	FullName      string
}

// GoogleVerifier verifies Google ID tokens against a specific client ID
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleClaims, error)
}

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a verifier bound to the given OAuth client ID
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*GoogleClaims, error) {
	p, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, models.AuthError{Message: "invalid google token"}
	}
	email, _ := p.Claims["email"].(string)
	emailVerified, _ := p.Claims["email_verified"].(bool)
	name, _ := p.Claims["name"].(string)
	return &GoogleClaims{Email: email, EmailVerified: emailVerified, FullName: name}, nil
}
