package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SMS_DEFAULT_COUNTRY_CODE", "")
	t.Setenv("CLIENT_ORIGINS", "")
	t.Setenv("COOKIE_SECURE", "")

	conf := New()

	assert.Equal(t, "+91", conf.SMSDefaultCountryCode)
	assert.Equal(t, []string{"http://localhost:5173"}, conf.ClientOrigins)
	assert.False(t, conf.CookieSecure)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "localink")
	t.Setenv("PORT", "8080")
	t.Setenv("SMS_DEFAULT_COUNTRY_CODE", "+1")
	t.Setenv("CLIENT_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("COOKIE_SECURE", "true")

	conf := New()

	assert.Equal(t, "mongodb://localhost:27017", conf.URL)
	assert.Equal(t, "localink", conf.DatabaseName)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "+1", conf.SMSDefaultCountryCode)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, conf.ClientOrigins)
	assert.True(t, conf.CookieSecure)
}

func TestWriteError_StatusByErrorKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", models.ValidationError{Message: "Invalid email format"}, http.StatusBadRequest},
		{"conflict", models.ConflictError{Message: "User Already exist."}, http.StatusBadRequest},
		{"not found", models.NotFoundError{Message: "User does not exist."}, http.StatusBadRequest},
		{"auth", models.AuthError{Message: "incorrect Password"}, http.StatusBadRequest},
		{"delivery", models.DeliveryError{Message: "failed to send email", Cause: errors.New("timeout")}, http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), tt.err.Error())
		})
	}
}

func TestWriteError_WrappedErrorsStillMap(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := models.DeliveryError{Message: "failed to send SMS", Cause: models.ValidationError{Message: "bad number"}}
	WriteError(rr, wrapped)

	// delivery failure wins even when the cause is a validation error
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, models.MessageResponse{Message: "created"})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message": "created"}`, rr.Body.String())
}
