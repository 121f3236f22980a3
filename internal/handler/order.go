package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rachelperfumes/storefront/internal/domain/order"
)

// createOrderRequest is the wire format of the order form submission.
type createOrderRequest struct {
	NumPerfumes int     `json:"numPerfumes" validate:"required,gte=1"`
	PerfumeType string  `json:"perfumeType" validate:"required"`
	Flavour     string  `json:"flavour"`
	Address     string  `json:"address" validate:"required"`
	Birthday    string  `json:"birthday" validate:"omitempty,oneof=yes no"`
	Total       float64 `json:"total" validate:"gte=0"`
}

// createOrderResponse is returned on successful order creation. CheckoutURL
// is present only when a payment session was obtained.
type createOrderResponse struct {
	OrderID     int64  `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// orderJSON is a single order row in the admin listing.
type orderJSON struct {
	ID        int64     `json:"id"`
	Perfume   string    `json:"perfume"`
	Flavour   string    `json:"flavour"`
	Quantity  int       `json:"quantity"`
	Address   string    `json:"address"`
	Birthday  string    `json:"birthday"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// createOrder handles POST /api/orders.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		Perfume:     req.PerfumeType,
		Flavour:     req.Flavour,
		Quantity:    req.NumPerfumes,
		Address:     req.Address,
		Birthday:    req.Birthday == "yes",
		ClientTotal: decimal.NewFromFloat(req.Total),
	})
	if err != nil {
		if errors.Is(err, order.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logError(r, "Create order failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		OrderID:     result.Order.ID,
		CheckoutURL: result.CheckoutURL,
	})
}

// listOrders handles GET /api/orders (admin only). The limit query parameter
// is optional and capped at the configured maximum.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.ListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, h.cfg.ListLimit)
	}

	orders, err := h.orders.ListRecent(r.Context(), limit)
	if err != nil {
		logError(r, "List orders failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]orderJSON, len(orders))
	for i, o := range orders {
		out[i] = toOrderJSON(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func toOrderJSON(o order.Order) orderJSON {
	birthday := "no"
	if o.Birthday {
		birthday = "yes"
	}
	return orderJSON{
		ID:        o.ID,
		Perfume:   o.Perfume,
		Flavour:   o.Flavour,
		Quantity:  o.Quantity,
		Address:   o.Address,
		Birthday:  birthday,
		Total:     o.Total.InexactFloat64(),
		CreatedAt: o.CreatedAt,
	}
}

// validationMessage renders the first field error in a client-friendly form.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request"
	}
	fe := ve[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
