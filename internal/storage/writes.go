package storage

import (
	"context"
	"fmt"
	"log/slog"

	"finboard/internal/core"
)

const (
	insertInvoiceQuery = `
INSERT INTO invoices (id, customer_id, amount, status, date)
VALUES (?, ?, ?, ?, ?)`

	updateInvoiceQuery = `
UPDATE invoices
SET customer_id = ?, amount = ?, status = ?
WHERE id = ?`

	deleteInvoiceQuery = `DELETE FROM invoices WHERE id = ?`
)

// CreateInvoice inserts a validated invoice.
func (r *Repository) CreateInvoice(ctx context.Context, inv core.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, insertInvoiceQuery,
		inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	slog.InfoContext(ctx, "Invoice created",
		"id", inv.ID,
		"customer_id", inv.CustomerID,
		"amount_cents", inv.Amount,
		"status", inv.Status)
	return nil
}

// UpdateInvoice rewrites an invoice's customer, amount, and status. The
// issue date is immutable. Updating a missing invoice is core.ErrNotFound.
func (r *Repository) UpdateInvoice(ctx context.Context, inv core.Invoice) error {
	if !inv.Status.Valid() {
		return core.ErrInvalidStatus
	}
	if inv.Amount < 0 {
		return core.ErrInvalidAmount
	}

	res, err := r.db.ExecContext(ctx, updateInvoiceQuery,
		inv.CustomerID, inv.Amount, inv.Status, inv.ID)
	if err != nil {
		return fmt.Errorf("update invoice %s: %w", inv.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update invoice %s: rows affected: %w", inv.ID, err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Invoice updated", "id", inv.ID, "amount_cents", inv.Amount)
	return nil
}

// DeleteInvoice removes an invoice. Deleting a missing invoice is
// core.ErrNotFound.
func (r *Repository) DeleteInvoice(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteInvoiceQuery, id)
	if err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete invoice %s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Invoice deleted", "id", id)
	return nil
}
