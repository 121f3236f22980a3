package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for order validation. Each of them unwraps to ErrValidation
// so transport layers can map the whole family to a single status code.
var (
	ErrValidation      = errors.New("invalid order")
	ErrInvalidQuantity = errors.Wrap(ErrValidation, "quantity must be at least 1")
	ErrEmptyPerfume    = errors.Wrap(ErrValidation, "perfume type is required")
	ErrEmptyAddress    = errors.Wrap(ErrValidation, "delivery address is required")
)

// Order is a persisted customer order. The identifier and creation timestamp
// are assigned by the store on insert and are immutable afterwards.
type Order struct {
	ID        int64
	Perfume   string
	Flavour   string
	Quantity  int
	Address   string
	Birthday  bool
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Store defines persistence operations for orders. The table is append-only:
// there is deliberately no update or delete operation.
type Store interface {
	// Insert persists a new order and fills in the assigned ID and CreatedAt.
	Insert(ctx context.Context, o *Order) error
	// ListRecent returns up to limit orders, newest first.
	ListRecent(ctx context.Context, limit int) ([]Order, error)
}

// Notifier delivers a best-effort notification about a freshly created order.
// Failures are logged by the caller and never affect order creation.
type Notifier interface {
	Notify(ctx context.Context, o Order) error
}

// PaymentInitiator creates a hosted checkout session for an order and returns
// its redirect URL. An empty URL with a nil error means payment is not
// available (for example, the integration is not configured).
type PaymentInitiator interface {
	CreateSession(ctx context.Context, o Order) (url string, err error)
}
