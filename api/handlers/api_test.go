package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-singhh/LocaLinkBackend/config"
)

func TestHealthCheckHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	http.HandlerFunc(healthCheckHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestNew_RegistersAuthRoutes(t *testing.T) {
	app := App{Config: config.Config{JWTSecret: "test-secret"}}
	router := app.New()

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/auth/send-verification-otp"},
		{"POST", "/api/auth/verify-signup-otp"},
		{"POST", "/api/auth/signup"},
		{"POST", "/api/auth/signin"},
		{"GET", "/api/auth/signout"},
		{"POST", "/api/auth/send-otp"},
		{"POST", "/api/auth/verify-otp"},
		{"POST", "/api/auth/reset-password"},
		{"POST", "/api/auth/google-auth"},
		{"POST", "/api/verification/send-verification-otp"},
		{"POST", "/api/verification/verify-signup-otp"},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		var match mux.RouteMatch
		assert.True(t, router.Match(req, &match), "no route for %s %s", route.method, route.path)
	}
}
