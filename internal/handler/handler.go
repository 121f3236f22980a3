// Package handler exposes the storefront HTTP surface: the public order API,
// the reverse-geocoding passthrough, and the session-gated admin pages.
package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rachelperfumes/storefront/internal/domain/auth"
	"github.com/rachelperfumes/storefront/internal/domain/order"
	"github.com/rachelperfumes/storefront/internal/geocode"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// sessionCookie is the name of the admin session cookie.
const sessionCookie = "storefront_session"

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// ListLimit caps the number of orders returned by listings.
	ListLimit int
	// SecureCookies marks the session cookie Secure (HTTPS-only deploys).
	SecureCookies bool
}

// Handler serves the storefront routes, delegating business logic to the
// injected order service and collaborators.
type Handler struct {
	cfg      HandlerConfig
	orders   *order.Service
	authz    auth.Authorizer
	sessions *auth.Sessions
	geo      *geocode.Client
	validate *validator.Validate
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	cfg HandlerConfig,
	orders *order.Service,
	authz auth.Authorizer,
	sessions *auth.Sessions,
	geo *geocode.Client,
) *Handler {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 200
	}
	return &Handler{
		cfg:      cfg,
		orders:   orders,
		authz:    authz,
		sessions: sessions,
		geo:      geo,
		validate: newValidator(),
	}
}

// Register adds all storefront routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("GET /api/orders", h.requireSessionJSON(h.listOrders))
	mux.HandleFunc("GET /api/reverse-geocode", h.reverseGeocode)

	mux.HandleFunc("GET /admin/login", h.loginForm)
	mux.HandleFunc("POST /admin/login", h.login)
	mux.HandleFunc("GET /admin/logout", h.logout)
	mux.HandleFunc("GET /admin/orders", h.requireSessionHTML(h.adminOrders))
}

// requireSessionJSON gates a JSON endpoint behind a valid admin session.
func (h *Handler) requireSessionJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.hasValidSession(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// requireSessionHTML gates an HTML page behind a valid admin session,
// redirecting browsers to the login form.
func (h *Handler) requireSessionHTML(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.hasValidSession(r) {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *Handler) hasValidSession(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return false
	}
	_, err = h.sessions.Verify(c.Value)
	return err == nil
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the API error shape {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// logError logs a handler failure with the request context's logger.
func logError(r *http.Request, msg string, err error) {
	zctx.From(r.Context()).Error(msg, zap.Error(err))
}
