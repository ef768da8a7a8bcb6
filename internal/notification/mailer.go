package notification

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/storeops/fulfillment/config"
)

// Mailer delivers customer notifications over SMTP. Delivery is best
// effort: failures are logged and dropped.
type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Attach registers the mailer on every notification topic.
func (m *Mailer) Attach(d *Dispatcher) error {
	if err := d.SubscribeDelay(m.delay); err != nil {
		return err
	}
	if err := d.SubscribeOutOfStock(m.outOfStock); err != nil {
		return err
	}
	return d.SubscribeExpiration(m.expiration)
}

func (m *Mailer) delay(leadTime int, productName string) {
	m.send(
		fmt.Sprintf("Restock notice: %s", productName),
		fmt.Sprintf("The product %q is currently out of stock. A restock is expected in %d day(s).", productName, leadTime),
	)
}

func (m *Mailer) outOfStock(productName string) {
	m.send(
		fmt.Sprintf("Out of stock: %s", productName),
		fmt.Sprintf("The product %q is unavailable and no restock is planned.", productName),
	)
}

func (m *Mailer) expiration(productName string, expiryDate time.Time) {
	m.send(
		fmt.Sprintf("Product expired: %s", productName),
		fmt.Sprintf("The product %q was removed from sale, it expired on %s.", productName, expiryDate.Format("2006-01-02")),
	)
}

func (m *Mailer) send(subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Warn("notification mail delivery failed",
			zap.String("subject", subject),
			zap.Error(err))
	}
}
