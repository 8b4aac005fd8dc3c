package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPaid    InvoiceStatus = "paid"
	StatusPending InvoiceStatus = "pending"
)

type (
	// InvoiceStatus is the lifecycle state of an invoice.
	InvoiceStatus string

	// Invoice is the stored shape of an invoice. Amount is in cents.
	Invoice struct {
		ID         string        `json:"id"`
		CustomerID string        `json:"customer_id"`
		Amount     int64         `json:"amount"`
		Status     InvoiceStatus `json:"status"`
		Date       string        `json:"date"` // YYYY-MM-DD
	}

	// RevenuePoint is one month of revenue. Revenue is in whole dollars,
	// never cents. Month is nullable in the store and stays nullable here.
	RevenuePoint struct {
		Month   *string `json:"month"`
		Revenue int64   `json:"revenue"`
	}

	// CardSummary is the aggregate snapshot shown on the dashboard cards.
	// The two totals are pre-formatted currency strings.
	CardSummary struct {
		NumberOfCustomers    int64  `json:"numberOfCustomers"`
		NumberOfInvoices     int64  `json:"numberOfInvoices"`
		TotalPaidInvoices    string `json:"totalPaidInvoices"`
		TotalPendingInvoices string `json:"totalPendingInvoices"`
	}

	// InvoiceSummary is a latest-invoice row joined with customer display
	// fields. Amount is pre-formatted for display.
	InvoiceSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		ImageURL string `json:"image_url"`
		Amount   string `json:"amount"`
	}

	// InvoiceRow is a filtered invoice-table row. Amount stays in cents;
	// the table view formats it later.
	InvoiceRow struct {
		ID         string        `json:"id"`
		CustomerID string        `json:"customer_id"`
		Name       string        `json:"name"`
		Email      string        `json:"email"`
		ImageURL   string        `json:"image_url"`
		Date       string        `json:"date"`
		Amount     int64         `json:"amount"`
		Status     InvoiceStatus `json:"status"`
	}

	// InvoiceForm is a single invoice loaded for editing. Amount is in
	// dollars (cents divided by 100), matching the form input.
	InvoiceForm struct {
		ID         string        `json:"id"`
		CustomerID string        `json:"customer_id"`
		Amount     float64       `json:"amount"`
		Status     InvoiceStatus `json:"status"`
	}

	// CustomerField is the minimal customer shape used by select inputs.
	CustomerField struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// CustomerSummary is a customer-table row with invoice aggregates.
	// The two totals are pre-formatted currency strings.
	CustomerSummary struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		ImageURL      string `json:"image_url"`
		TotalInvoices int64  `json:"total_invoices"`
		TotalPending  string `json:"total_pending"`
		TotalPaid     string `json:"total_paid"`
	}
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid invoice status")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCustomer = errors.New("empty customer reference")
	ErrInvalidDate   = errors.New("invalid date")
)

// Valid reports whether the status is one of the known states.
func (s InvoiceStatus) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

// Validate checks an invoice before it is written to the store. Reads never
// validate; bad identifiers simply produce empty result sets.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.CustomerID) == "" {
		return ErrEmptyCustomer
	}
	if inv.Amount < 0 {
		return ErrInvalidAmount
	}
	if !inv.Status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := time.Parse("2006-01-02", inv.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
