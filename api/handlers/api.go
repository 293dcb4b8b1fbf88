package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/gaurav-singhh/LocaLinkBackend/api"
	"github.com/gaurav-singhh/LocaLinkBackend/api/scheduler"
	"github.com/gaurav-singhh/LocaLinkBackend/config"
	"github.com/gaurav-singhh/LocaLinkBackend/databases"
	"github.com/gaurav-singhh/LocaLinkBackend/models"
	"github.com/gaurav-singhh/LocaLinkBackend/notifications"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	sessions := api.NewSessionIssuer(a.Config.JWTSecret, a.Config.CookieSecure)
	api.SetupSessionAuth(sessions)

	udb := databases.NewUserDatabase(a.dbHelper)
	svdb := databases.NewSignupVerificationDatabase(a.dbHelper)
	mailer := notifications.NewSendgridMailer(&a.Config)
	sms := notifications.NewTwilioSender(&a.Config)

	var google GoogleVerifier
	if a.Config.GoogleClientID != "" {
		google = NewGoogleVerifier(a.Config.GoogleClientID)
	}

	v := Verification{SVDB: svdb, UDB: udb, Mail: mailer, SMS: sms}
	auth := Auth{UDB: udb, SVDB: svdb, Mail: mailer, Sessions: sessions, Google: google}

	r := mux.NewRouter()
	r.Use(api.RequestLogger)
	r.Use(api.CORS(a.Config.ClientOrigins))

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// realtime channel
	r.Handle("/socket.io/", InitializeSocketIO())

	authCreate := r.PathPrefix("/api/auth").Subrouter()
	authCreate.Handle("/send-verification-otp", http.HandlerFunc(v.SendVerificationOtpHandler)).Methods("POST")
	authCreate.Handle("/verify-signup-otp", http.HandlerFunc(v.VerifySignupOtpHandler)).Methods("POST")
	authCreate.Handle("/signup", http.HandlerFunc(auth.SignupHandler)).Methods("POST")
	authCreate.Handle("/signin", http.HandlerFunc(auth.SigninHandler)).Methods("POST")
	authCreate.Handle("/signout", http.HandlerFunc(auth.SignoutHandler)).Methods("GET")
	authCreate.Handle("/send-otp", http.HandlerFunc(auth.SendOtpHandler)).Methods("POST")
	authCreate.Handle("/verify-otp", http.HandlerFunc(auth.VerifyOtpHandler)).Methods("POST")
	authCreate.Handle("/reset-password", http.HandlerFunc(auth.ResetPasswordHandler)).Methods("POST")
	authCreate.Handle("/google-auth", http.HandlerFunc(auth.GoogleAuthHandler)).Methods("POST")

	// the client also reaches the verification pair on its own prefix
	verifyCreate := r.PathPrefix("/api/verification").Subrouter()
	verifyCreate.Handle("/send-verification-otp", http.HandlerFunc(v.SendVerificationOtpHandler)).Methods("POST")
	verifyCreate.Handle("/verify-signup-otp", http.HandlerFunc(v.VerifySignupOtpHandler)).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("localink-api has connected to the database")

	// unique contact indexes and the 24h pending-record TTL must exist
	// before the first request
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()
	udb := databases.NewUserDatabase(a.dbHelper)
	svdb := databases.NewSignupVerificationDatabase(a.dbHelper)
	if err := udb.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create user indexes")
		return err
	}
	if err := svdb.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create signup verification indexes")
		return err
	}

	// background sweep of stale pending records
	s := scheduler.NewScheduler(svdb)
	s.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
