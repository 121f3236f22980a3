package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// loginPage is the data passed to the login template.
type loginPage struct {
	Error string
}

// ordersPage is the data passed to the admin orders template.
type ordersPage struct {
	Orders []orderJSON
}

// loginForm handles GET /admin/login.
func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "login.html", loginPage{})
}

// login handles POST /admin/login: on valid credentials it issues a session
// cookie and redirects to the orders page.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if !h.authz.Authorize(username, password) {
		zctx.From(r.Context()).Warn("Admin login rejected", zap.String("username", username))
		renderTemplate(w, r, http.StatusUnauthorized, "login.html", loginPage{Error: "Invalid credentials."})
		return
	}

	token, err := h.sessions.Issue(username)
	if err != nil {
		logError(r, "Issue session failed", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

// logout handles GET /admin/logout: clears the session cookie and sends the
// browser back to the store.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// adminOrders handles GET /admin/orders (session required): renders the
// order history table, newest first.
func (h *Handler) adminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListRecent(r.Context(), h.cfg.ListLimit)
	if err != nil {
		logError(r, "List orders failed", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	page := ordersPage{Orders: make([]orderJSON, len(orders))}
	for i, o := range orders {
		page.Orders[i] = toOrderJSON(o)
	}
	renderTemplate(w, r, http.StatusOK, "orders.html", page)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logError(r, "Render template failed", err)
	}
}
