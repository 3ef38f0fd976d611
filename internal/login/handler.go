package login

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/2beens/portfolio/internal/auth"
	"github.com/2beens/portfolio/internal/gate"
	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=login

type loginService interface {
	Login(creds auth.Credentials) (string, time.Time, error)
	TokenTTL() time.Duration
}

type successResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	service       loginService
	secureCookies bool
	metrics       *metrics.Manager
}

func NewHandler(
	service loginService,
	secureCookies bool,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		service:       service,
		secureCookies: secureCookies,
		metrics:       metricsManager,
	}
}

// SetupRoutes registers login and logout. limit, when set, wraps the login
// route only.
func (handler *Handler) SetupRoutes(router *mux.Router, limit func(http.Handler) http.Handler) {
	var loginHandler http.Handler = http.HandlerFunc(handler.handleLogin)
	if limit != nil {
		loginHandler = limit(loginHandler)
	}
	router.Handle("/api/login", loginHandler).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/api/logout", handler.handleLogout).Methods("POST", "GET", "OPTIONS").Name("logout")
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	creds, fromForm, err := readCredentials(r)
	if err != nil {
		log.Errorf("login failed, read credentials: %s", err)
		handler.countAttempt("bad_request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := handler.service.Login(creds)
	if errors.Is(err, auth.ErrWrongCredentials) {
		log.Tracef("failed login attempt for user: %s", creds.Username)
		handler.countAttempt("failure")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed: %s", err)
		handler.countAttempt("error")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.countAttempt("success")
	log.Tracef("new login, token expires at %s", expiresAt.Format(time.RFC3339))

	http.SetCookie(w, auth.SessionCookie(token, handler.service.TokenTTL(), handler.secureCookies))
	if fromForm {
		http.Redirect(w, r, gate.ProtectedAreaPath, http.StatusSeeOther)
		return
	}
	pkg.WriteJSON(w, successResponse{Success: true}, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.SetCookie(w, auth.ClearedSessionCookie(handler.secureCookies))
	log.Trace("logout, session cookie cleared")

	// the sidebar link and the logout form both expect a page
	if r.Method == http.MethodGet || isForm(r) {
		http.Redirect(w, r, gate.LoginPath, http.StatusSeeOther)
		return
	}
	pkg.WriteJSON(w, successResponse{Success: true}, http.StatusOK)
}

func (handler *Handler) countAttempt(result string) {
	if handler.metrics != nil {
		handler.metrics.CounterLoginAttempts.WithLabelValues(result).Inc()
	}
}

func readCredentials(r *http.Request) (auth.Credentials, bool, error) {
	var creds auth.Credentials
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return creds, true, err
		}
		creds.Username = r.PostForm.Get("username")
		creds.Password = r.PostForm.Get("password")
		return creds, true, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return creds, false, err
	}
	return creds, false, nil
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded"
}
