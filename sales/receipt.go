package sales

import (
	"bytes"
	"fmt"
	"os"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// ReceiptPDF renders a printable receipt for a completed sale. The QR in
// the corner encodes the sale id so a later return can pull the record up.
func ReceiptPDF(sale *SaleRecord) ([]byte, error) {
	storeName := os.Getenv("STORE_NAME")
	if storeName == "" {
		storeName = "JLINK Store"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, storeName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Sale: %s", sale.SaleID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", sale.SaleDate.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	customer := sale.CustomerName
	if customer == "" {
		customer = sale.CustomerEmail
	}
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s", customer))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(80, 8, "Item")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(35, 8, "Price")
	pdf.Cell(35, 8, "Total")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, line := range sale.Items {
		pdf.Cell(80, 7, line.Name)
		pdf.Cell(25, 7, fmt.Sprintf("%d", line.Quantity))
		pdf.Cell(35, 7, fmt.Sprintf("%.2f", line.Price))
		pdf.Cell(35, 7, fmt.Sprintf("%.2f", line.Total))
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: LKR %.2f", sale.TotalAmount))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s", sale.PaymentMethod))

	qrPNG, err := qrcode.Encode(sale.SaleID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("receipt qr: %w", err)
	}
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("saleqr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("saleqr", 160, 20, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
