// Package mailer delivers receipt emails over SMTP. Failures are the
// caller's to report; nothing here retries.
package mailer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/Jasith06/jlink-pos-web/sales"
)

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
	StoreName    string
	StoreAddress string
	StorePhone   string
}

// LoadConfig reads the SMTP settings from the environment. Host and email
// are required; the receipt step degrades to a warning when they are
// missing, so this returns an error instead of a half-configured mailer.
func LoadConfig() (Config, error) {
	cfg := Config{
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPEmail:    os.Getenv("SMTP_AUTH_EMAIL"),
		SMTPPassword: os.Getenv("SMTP_AUTH_PASSWORD"),
		StoreName:    os.Getenv("STORE_NAME"),
		StoreAddress: os.Getenv("STORE_ADDRESS"),
		StorePhone:   os.Getenv("STORE_PHONE"),
	}
	if cfg.SMTPHost == "" || cfg.SMTPEmail == "" {
		return cfg, fmt.Errorf("SMTP_HOST and SMTP_AUTH_EMAIL must be set")
	}

	cfg.SMTPPort = 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return cfg, fmt.Errorf("invalid SMTP_PORT %q", p)
		}
		cfg.SMTPPort = port
	}
	if cfg.StoreName == "" {
		cfg.StoreName = "JLINK Store"
	}
	return cfg, nil
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendReceipt emails the sale receipt to the customer.
func (m *Mailer) SendReceipt(toEmail, toName string, sale *sales.SaleRecord) error {
	if toName == "" {
		toName = "Valued Customer"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", fmt.Sprintf("%s - Receipt %s", m.cfg.StoreName, sale.SaleID))
	msg.SetBody("text/plain", receiptText(m.cfg, toName, sale))
	msg.AddAlternative("text/html", receiptHTML(m.cfg, toName, sale))

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPEmail, m.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	return nil
}

func receiptText(cfg Config, name string, sale *sales.SaleRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nThank you for shopping at %s.\n\n", name, cfg.StoreName)
	fmt.Fprintf(&b, "Sale: %s\nDate: %s\n\n", sale.SaleID, sale.SaleDate.Format("2006-01-02 15:04"))
	for _, line := range sale.Items {
		fmt.Fprintf(&b, "%s x%d - LKR %.2f\n", line.Name, line.Quantity, line.Total)
	}
	fmt.Fprintf(&b, "\nSubtotal: LKR %.2f\nTax: LKR %.2f\nTotal: LKR %.2f\n",
		sale.Totals.Subtotal, sale.Totals.Tax, sale.Totals.Total)
	if cfg.StoreAddress != "" || cfg.StorePhone != "" {
		fmt.Fprintf(&b, "\n%s %s\n", cfg.StoreAddress, cfg.StorePhone)
	}
	b.WriteString("\nWe appreciate your business and look forward to serving you again.\n")
	return b.String()
}

func receiptHTML(cfg Config, name string, sale *sales.SaleRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2><p>Dear %s,</p><p>Thank you for your purchase.</p>", cfg.StoreName, name)
	fmt.Fprintf(&b, "<p>Sale <strong>%s</strong> on %s</p>", sale.SaleID, sale.SaleDate.Format("2006-01-02 15:04"))
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Item</th><th>Qty</th><th>Total</th></tr>")
	for _, line := range sale.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>LKR %.2f</td></tr>", line.Name, line.Quantity, line.Total)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p><strong>Total: LKR %.2f</strong></p>", sale.Totals.Total)
	return b.String()
}
