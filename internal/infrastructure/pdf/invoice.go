// Package pdf renders printable documents for sending to customers.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"bizledger/internal/domain/documents/invoice"
)

// InvoiceData carries everything the invoice layout needs. Catalog
// references are resolved by the caller so the renderer stays pure.
type InvoiceData struct {
	Invoice *invoice.CustomerInvoice

	CustomerName    string
	CustomerTaxID   string
	CustomerAddress string
}

// Renderer produces PDF documents.
type Renderer struct {
	companyName string
}

// NewRenderer creates a renderer. companyName appears in the header of
// every document.
func NewRenderer(companyName string) *Renderer {
	return &Renderer{companyName: companyName}
}

const (
	colNo    = 12.0
	colDesc  = 78.0
	colQty   = 25.0
	colPrice = 35.0
	colSum   = 40.0
)

// RenderInvoice lays out a customer invoice on A4. Draft and cancelled
// invoices carry their status in the title so printouts are never
// mistaken for payable documents.
func (r *Renderer) RenderInvoice(data InvoiceData) ([]byte, error) {
	inv := data.Invoice

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	title := "INVOICE " + inv.Number
	switch inv.Status {
	case invoice.StatusDraft:
		title += " (DRAFT)"
	case invoice.StatusCancelled:
		title += " (CANCELLED)"
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	if r.companyName != "" {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 5, r.companyName, "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, "Date: "+inv.Date.Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "Due date: "+inv.DueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, "Bill to", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	customerName := data.CustomerName
	if customerName == "" {
		customerName = "Unknown"
	}
	doc.CellFormat(0, 5, customerName, "", 1, "L", false, 0, "")
	if data.CustomerTaxID != "" {
		doc.CellFormat(0, 5, "Tax ID: "+data.CustomerTaxID, "", 1, "L", false, 0, "")
	}
	if data.CustomerAddress != "" {
		doc.MultiCell(0, 5, data.CustomerAddress, "", "L", false)
	}
	doc.Ln(6)

	r.linesTable(doc, inv)
	r.totalsBlock(doc, inv)

	if inv.Comment != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, inv.Comment, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) linesTable(doc *fpdf.Fpdf, inv *invoice.CustomerInvoice) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(colNo, 7, "#", "1", 0, "C", true, 0, "")
	doc.CellFormat(colDesc, 7, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(colQty, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(colPrice, 7, "Unit price", "1", 0, "R", true, 0, "")
	doc.CellFormat(colSum, 7, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 9)
	for _, line := range inv.Lines {
		doc.CellFormat(colNo, 6, fmt.Sprintf("%d", line.LineNo), "1", 0, "C", false, 0, "")
		doc.CellFormat(colDesc, 6, line.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(colQty, 6, line.Quantity.Decimal().String(), "1", 0, "R", false, 0, "")
		doc.CellFormat(colPrice, 6, line.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(colSum, 6, line.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
}

func (r *Renderer) totalsBlock(doc *fpdf.Fpdf, inv *invoice.CustomerInvoice) {
	labelWidth := colNo + colDesc + colQty + colPrice

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(labelWidth, 7, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(colSum, 7, inv.EffectiveTotal().StringFixed(2), "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(labelWidth, 6, "Received", "1", 0, "R", false, 0, "")
	doc.CellFormat(colSum, 6, inv.ReceivedAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(labelWidth, 7, "Balance due", "1", 0, "R", false, 0, "")
	doc.CellFormat(colSum, 7, inv.Balance().StringFixed(2), "1", 1, "R", false, 0, "")
}
