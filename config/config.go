package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	Port         string

	JWTSecret string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string

	TwilioAccountSID      string
	TwilioAuthToken       string
	TwilioFrom            string // phone number or MG... messaging service SID
	SMSDefaultCountryCode string

	GoogleClientID string

	ClientOrigins []string
	CookieSecure  bool
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	countryCode := os.Getenv("SMS_DEFAULT_COUNTRY_CODE")
	if countryCode == "" {
		countryCode = "+91"
	}

	origins := []string{"http://localhost:5173"}
	if raw := os.Getenv("CLIENT_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		URL:                   os.Getenv("DB_URI"),
		DatabaseName:          os.Getenv("DB_NAME"),
		Port:                  os.Getenv("PORT"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		SendgridAPIKey:        os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:             os.Getenv("EMAIL_FROM"),
		EmailFromName:         os.Getenv("EMAIL_FROM_NAME"),
		TwilioAccountSID:      os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:       os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:            os.Getenv("TWILIO_FROM"),
		SMSDefaultCountryCode: countryCode,
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		ClientOrigins:         origins,
		CookieSecure:          os.Getenv("COOKIE_SECURE") == "true",
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"message": "%s, %v"}`, message, err)))
}

// WriteError logs err and writes it as a JSON message with the status code
// matching its place in the error taxonomy. Validation, conflict, not-found
// and auth failures are client errors; delivery failures and anything
// unexpected surface as 500 with the raw detail in the message.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var (
		validationErr models.ValidationError
		conflictErr   models.ConflictError
		notFoundErr   models.NotFoundError
		authErr       models.AuthError
		deliveryErr   models.DeliveryError
	)
	switch {
	// delivery first: a dispatch failure stays a 500 no matter what it wraps
	case errors.As(err, &deliveryErr):
		status = http.StatusInternalServerError
	case errors.As(err, &validationErr),
		errors.As(err, &conflictErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &authErr):
		status = http.StatusBadRequest
	}

	zap.S().With("error", err.Error()).Error("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: err.Error()})
}

// WriteJSON writes v as the JSON response body with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
