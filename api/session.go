package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session token and its cookie stay valid
const SessionTTL = 7 * 24 * time.Hour

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "token"

// SessionClaims holds the JWT payload fields
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// SessionIssuer creates and verifies signed, time-bound session tokens
type SessionIssuer struct {
	secret       []byte
	cookieSecure bool
}

// NewSessionIssuer builds a session issuer signing with the given secret
func NewSessionIssuer(secret string, cookieSecure bool) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), cookieSecure: cookieSecure}
}

// Issue signs a session token for the user id, expiring after SessionTTL
func (s *SessionIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns the user id it was issued for
func (s *SessionIssuer) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.UserID, nil
}

// SetCookie writes the session cookie: HTTP-only, SameSite strict, 7 day
// max age
func (s *SessionIssuer) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie unconditionally
func (s *SessionIssuer) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
