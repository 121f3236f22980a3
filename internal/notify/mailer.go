// Package notify delivers best-effort order notifications over SMTP.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/wneessen/go-mail"

	"github.com/rachelperfumes/storefront/internal/domain/order"
)

var _ order.Notifier = (*Mailer)(nil)

// MailerConfig holds the SMTP transport settings and the operator address
// that receives order notifications.
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// NotifyEmail is used as both sender and recipient, matching how a
	// single-operator shop runs its notifications.
	NotifyEmail string
}

// Mailer sends one plain-text email per order. Delivery is not retried and
// not acknowledged beyond the error returned to the dispatching goroutine.
type Mailer struct {
	client *mail.Client
	addr   string
}

// NewMailer creates a Mailer from the given SMTP configuration.
func NewMailer(cfg MailerConfig) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create smtp client")
	}
	return &Mailer{client: client, addr: cfg.NotifyEmail}, nil
}

// Notify emails the operator a summary of the order.
func (m *Mailer) Notify(ctx context.Context, o order.Order) error {
	msg := mail.NewMsg()
	if err := msg.From(m.addr); err != nil {
		return errors.Wrap(err, "set from")
	}
	if err := msg.To(m.addr); err != nil {
		return errors.Wrap(err, "set to")
	}
	msg.Subject(fmt.Sprintf("New order #%d — %s", o.ID, o.Perfume))
	msg.SetBodyString(mail.TypeTextPlain, summary(o))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "send mail")
	}
	return nil
}

// summary renders the plain-text notification body.
func summary(o order.Order) string {
	var b strings.Builder
	b.WriteString("New order received.\n")
	fmt.Fprintf(&b, "Order ID: %d\n", o.ID)
	fmt.Fprintf(&b, "Perfume: %s\n", o.Perfume)
	fmt.Fprintf(&b, "Flavour: %s\n", o.Flavour)
	fmt.Fprintf(&b, "Quantity: %d\n", o.Quantity)
	fmt.Fprintf(&b, "Address: %s\n", o.Address)
	fmt.Fprintf(&b, "Total: R%s\n", o.Total.StringFixed(2))
	return b.String()
}

// Nop is the Notifier used when email is not configured. It succeeds without
// doing anything.
type Nop struct{}

// Notify implements order.Notifier as a no-op.
func (Nop) Notify(context.Context, order.Order) error { return nil }
