package order

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlaceOrderRequest holds the input for creating an order.
type PlaceOrderRequest struct {
	Perfume  string
	Flavour  string
	Quantity int
	Address  string
	Birthday bool
	// ClientTotal is the total computed by the untrusted client. It is
	// cross-checked against the Pricing Policy; the server-computed value
	// is what gets persisted.
	ClientTotal decimal.Decimal
}

// PlaceOrderResult holds the output of a successfully placed order.
type PlaceOrderResult struct {
	Order       Order
	CheckoutURL string
}

// ServiceConfig holds tuning knobs for the order service.
type ServiceConfig struct {
	// UnitPrice is the price of a single perfume.
	UnitPrice decimal.Decimal
	// PaymentTimeout bounds the synchronous checkout-session call.
	PaymentTimeout time.Duration
	// NotifyTimeout bounds each background notification delivery.
	NotifyTimeout time.Duration
}

// Service orchestrates order creation: validation, pricing, persistence, and
// the two post-persistence side effects (notification, payment session).
// Once an order is persisted it is always reported as created, whatever
// happens to the side effects.
type Service struct {
	store    Store
	notifier Notifier
	payments PaymentInitiator
	cfg      ServiceConfig

	notifyWG sync.WaitGroup
}

// NewService creates an order Service with the required dependencies.
func NewService(store Store, notifier Notifier, payments PaymentInitiator, cfg ServiceConfig) *Service {
	if cfg.PaymentTimeout <= 0 {
		cfg.PaymentTimeout = 10 * time.Second
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	return &Service{
		store:    store,
		notifier: notifier,
		payments: payments,
		cfg:      cfg,
	}
}

// PlaceOrder validates the request, computes the authoritative total, persists
// the order, and triggers the notification and payment side effects. The
// notification is dispatched in the background and never blocks the response;
// the payment call is synchronous but bounded and its failure degrades to an
// empty checkout URL.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	lg := zctx.From(ctx)

	total := ComputeTotal(req.Quantity, s.cfg.UnitPrice, req.Birthday)
	if !req.ClientTotal.IsZero() && !req.ClientTotal.Equal(total) {
		// The client does its own arithmetic for display purposes. The
		// computed value wins; a mismatch is worth an operator's attention.
		lg.Warn("Client total does not match computed total",
			zap.String("client_total", req.ClientTotal.String()),
			zap.String("computed_total", total.String()),
		)
	}

	o := Order{
		Perfume:  strings.TrimSpace(req.Perfume),
		Flavour:  strings.TrimSpace(req.Flavour),
		Quantity: req.Quantity,
		Address:  strings.TrimSpace(req.Address),
		Birthday: req.Birthday,
		Total:    total,
	}
	if err := s.store.Insert(ctx, &o); err != nil {
		return nil, errors.Wrap(err, "insert order")
	}

	s.dispatchNotification(ctx, o)

	checkoutURL := s.createPaymentSession(ctx, o)

	return &PlaceOrderResult{Order: o, CheckoutURL: checkoutURL}, nil
}

// ListRecent returns up to limit orders, newest first. Callers are expected
// to have authorized the read already.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	return s.store.ListRecent(ctx, limit)
}

// Wait blocks until all in-flight background notifications have finished.
// Called during graceful shutdown and by tests.
func (s *Service) Wait() {
	s.notifyWG.Wait()
}

// dispatchNotification fires the notifier in a background goroutine. The
// goroutine inherits the request's logger and trace context but not its
// cancellation: the client response must not wait for delivery.
func (s *Service) dispatchNotification(ctx context.Context, o Order) {
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
		defer cancel()

		lg := zctx.From(nctx).With(zap.Int64("order_id", o.ID))
		if err := s.notifier.Notify(nctx, o); err != nil {
			lg.Error("Order notification failed", zap.Error(err))
			return
		}
		lg.Info("Order notification sent")
	}()
}

// createPaymentSession asks the payment initiator for a hosted checkout URL.
// Provider failures are logged and swallowed; the order has already been
// persisted and must be reported as created either way.
func (s *Service) createPaymentSession(ctx context.Context, o Order) string {
	pctx, cancel := context.WithTimeout(ctx, s.cfg.PaymentTimeout)
	defer cancel()

	url, err := s.payments.CreateSession(pctx, o)
	if err != nil {
		zctx.From(ctx).Error("Payment session creation failed",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return ""
	}
	return url
}

func validate(req PlaceOrderRequest) error {
	if req.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(req.Perfume) == "" {
		return ErrEmptyPerfume
	}
	if strings.TrimSpace(req.Address) == "" {
		return ErrEmptyAddress
	}
	return nil
}
