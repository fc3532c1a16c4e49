package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/Jasith06/jlink-pos-web/cart"
	"github.com/Jasith06/jlink-pos-web/sales"
)

func sampleSale() *sales.SaleRecord {
	return &sales.SaleRecord{
		SaleID:        "sale_abc",
		CustomerEmail: "customer@example.com",
		Items: []cart.Line{
			{ProductID: "PARA-001", Name: "Panadol", Price: 150, Quantity: 2, Total: 300},
		},
		Totals:      cart.Totals{Subtotal: 300, Tax: 0, Total: 300, ItemCount: 2},
		TotalAmount: 300,
		SaleDate:    time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC),
	}
}

func TestReceiptText(t *testing.T) {
	cfg := Config{StoreName: "JLINK Store"}
	body := receiptText(cfg, "Jasith", sampleSale())

	for _, want := range []string{"Dear Jasith", "sale_abc", "Panadol x2", "Total: LKR 300.00", "Tax: LKR 0.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("text body missing %q:\n%s", want, body)
		}
	}
}

func TestReceiptHTML(t *testing.T) {
	cfg := Config{StoreName: "JLINK Store"}
	body := receiptHTML(cfg, "Jasith", sampleSale())

	for _, want := range []string{"<h2>JLINK Store</h2>", "<td>Panadol</td>", "Total: LKR 300.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}

func TestLoadConfigRequiresHost(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_AUTH_EMAIL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when SMTP settings are absent")
	}

	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_AUTH_EMAIL", "store@example.com")
	t.Setenv("SMTP_PORT", "2525")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("port = %d, want 2525", cfg.SMTPPort)
	}
	if cfg.StoreName != "JLINK Store" {
		t.Errorf("default store name = %q", cfg.StoreName)
	}
}
