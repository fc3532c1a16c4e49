// Package sales finalizes checkouts: one durable sale record, per-line
// inventory decrements, a mobile-sync mirror and a receipt email. Only the
// record itself is load-bearing; every later step is best-effort and
// reported back as a warning.
package sales

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Jasith06/jlink-pos-web/apperr"
	"github.com/Jasith06/jlink-pos-web/cart"
	"github.com/Jasith06/jlink-pos-web/utils"
)

// SaleRecord is the immutable, persisted result of a finalized checkout.
type SaleRecord struct {
	SaleID        string      `json:"saleId" bson:"_id"`
	CustomerEmail string      `json:"customerEmail" bson:"customerEmail"`
	CustomerName  string      `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Items         []cart.Line `json:"items" bson:"items"`
	Totals        cart.Totals `json:"totals" bson:"totals"`
	TotalAmount   float64     `json:"totalAmount" bson:"totalAmount"`
	Profit        float64     `json:"profit" bson:"profit"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	Status        string      `json:"status" bson:"status"`
	SaleDate      time.Time   `json:"saleDate" bson:"saleDate"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
}

// Store persists sale records and their mobile-sync mirror copies.
type Store interface {
	Insert(ctx context.Context, sale SaleRecord) error
	Mirror(ctx context.Context, sale SaleRecord) error
	List(ctx context.Context) ([]SaleRecord, error)
	FindByID(ctx context.Context, saleID string) (*SaleRecord, error)
}

// Inventory decrements product stock. *products.Catalog satisfies this.
type Inventory interface {
	Decrement(ctx context.Context, productID string, by int) (int, error)
}

// ReceiptSender delivers the customer receipt. *mailer.Mailer satisfies
// this.
type ReceiptSender interface {
	SendReceipt(toEmail, toName string, sale *SaleRecord) error
}

// Result is what the operator sees after a checkout. Warnings carry the
// non-fatal failures of the later pipeline steps.
type Result struct {
	SaleID      string   `json:"saleId"`
	ReceiptSent bool     `json:"receiptSent"`
	Warnings    []string `json:"warnings,omitempty"`
}

type Finalizer struct {
	Store     Store
	Inventory Inventory
	Receipts  ReceiptSender
}

func NewFinalizer(store Store, inventory Inventory, receipts ReceiptSender) *Finalizer {
	return &Finalizer{Store: store, Inventory: inventory, Receipts: receipts}
}

// ProcessSale turns a cart summary into a completed sale.
//
// The record insert is the transaction: it either happens and the sale
// stands, or ProcessSale fails. Inventory decrements run per line and a
// failed line never aborts the others or retracts the sale. Mirror and
// receipt delivery are best-effort.
func (f *Finalizer) ProcessSale(ctx context.Context, summary cart.Summary, customerEmail, customerName string) (*Result, error) {
	if len(summary.Items) == 0 {
		return nil, apperr.NewValidation("cart", "cannot finalize an empty cart")
	}
	if customerEmail == "" {
		return nil, apperr.NewValidation("customerEmail", "customer email is required")
	}
	if !utils.IsValidEmail(customerEmail) {
		return nil, apperr.NewValidation("customerEmail", "customer email is not valid")
	}

	now := time.Now()
	sale := SaleRecord{
		SaleID:        "sale_" + utils.GetUUID(),
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		Items:         summary.Items,
		Totals:        summary.Totals,
		TotalAmount:   summary.Totals.Total,
		Profit:        summary.Profit,
		PaymentMethod: "cash",
		Status:        "completed",
		SaleDate:      now,
		CreatedAt:     now,
	}

	if err := f.Store.Insert(ctx, sale); err != nil {
		return nil, apperr.NewUpstream("could not record sale", err)
	}

	result := &Result{SaleID: sale.SaleID}

	for _, line := range sale.Items {
		if _, err := f.Inventory.Decrement(ctx, line.ProductID, line.Quantity); err != nil {
			log.Printf("sale %s: inventory decrement failed for %s: %v", sale.SaleID, line.ProductID, err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("inventory not updated for %s", line.Name))
		}
	}

	if err := f.Store.Mirror(ctx, sale); err != nil {
		log.Printf("sale %s: mobile sync failed: %v", sale.SaleID, err)
		result.Warnings = append(result.Warnings, "mobile sync failed")
	}

	if err := f.Receipts.SendReceipt(customerEmail, customerName, &sale); err != nil {
		log.Printf("sale %s: receipt delivery failed: %v", sale.SaleID, err)
		result.Warnings = append(result.Warnings, "receipt email not delivered")
	} else {
		result.ReceiptSent = true
	}

	return result, nil
}
