package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/mail"

	"github.com/garetharevans/s-ais/report"
)

// DeliveryError reports a failed send. Delivery failures are fatal to a
// sync run; there is no retry.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("notifier: send: %v", e.Err) }

func (e *DeliveryError) Unwrap() error { return e.Err }

// Result carries the outcome of one asynchronous send.
type Result struct {
	Err error
}

// Mailer delivers position reports over SMTP.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
}

// NewMailer creates an SMTP mailer.
func NewMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{host: host, port: port, user: user, password: password}
}

// Send delivers msg asynchronously and reports the outcome on the returned
// channel. The channel is buffered; exactly one Result is sent.
func (m *Mailer) Send(ctx context.Context, msg report.Message) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- Result{Err: m.send(ctx, msg)}
	}()
	return ch
}

func (m *Mailer) send(ctx context.Context, msg report.Message) error {
	// Fresh mail service per send — nikoksr/notify accumulates receivers
	// across AddReceivers calls, so reuse would cause duplicate sends.
	mailSvc := mail.New(msg.From, fmt.Sprintf("%s:%d", m.host, m.port))
	mailSvc.AuthenticateSMTP("", m.user, m.password, m.host)
	mailSvc.AddReceivers(msg.To)

	n := notify.New()
	n.UseServices(mailSvc)

	if err := n.Send(ctx, msg.Subject, msg.Text); err != nil {
		slog.Error("send email failed", "to", msg.To, "error", err)
		return &DeliveryError{Err: err}
	}

	slog.Info("notification sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
