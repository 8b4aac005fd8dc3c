// Package storage holds the dashboard's data-access functions: parameterized
// queries against the relational store, pagination math, and the mapping of
// raw rows into display-ready records.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/format"

	"github.com/shopspring/decimal"
)

// Fixed page sizes. These are policy, not configuration.
const (
	InvoicesPerPage  = 6
	CustomersPerPage = 6
)

const (
	revenueQuery = `SELECT month, revenue FROM revenue`

	latestInvoicesQuery = `
SELECT invoices.amount, customers.name, customers.image_url, customers.email, invoices.id
FROM invoices
JOIN customers ON invoices.customer_id = customers.id
ORDER BY invoices.date DESC
LIMIT 5`

	invoiceCountQuery  = `SELECT COUNT(*) FROM invoices`
	customerCountQuery = `SELECT COUNT(*) FROM customers`
	invoiceStatusQuery = `
SELECT SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END) AS paid,
       SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END) AS pending
FROM invoices`

	filteredInvoicesQuery = `
SELECT invoices.id, invoices.customer_id, customers.name, customers.email,
       customers.image_url, invoices.date, invoices.amount, invoices.status
FROM invoices
JOIN customers ON invoices.customer_id = customers.id
WHERE customers.name LIKE ? OR
      customers.email LIKE ? OR
      CAST(invoices.amount AS TEXT) LIKE ? OR
      CAST(invoices.date AS TEXT) LIKE ? OR
      invoices.status LIKE ?
ORDER BY invoices.date DESC
LIMIT ? OFFSET ?`

	filteredInvoicesCountQuery = `
SELECT COUNT(*)
FROM invoices
JOIN customers ON invoices.customer_id = customers.id
WHERE customers.name LIKE ? OR
      customers.email LIKE ? OR
      CAST(invoices.amount AS TEXT) LIKE ? OR
      CAST(invoices.date AS TEXT) LIKE ? OR
      invoices.status LIKE ?`

	invoiceByIDQuery = `
SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status
FROM invoices
WHERE invoices.id = ?`

	customersQuery = `SELECT id, name FROM customers ORDER BY name ASC`

	filteredCustomersQuery = `
SELECT customers.id, customers.name, customers.email, customers.image_url,
       COUNT(invoices.id) AS total_invoices,
       SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END) AS total_pending,
       SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END) AS total_paid
FROM customers
LEFT JOIN invoices ON customers.id = invoices.customer_id
WHERE customers.name LIKE ? OR customers.email LIKE ?
GROUP BY customers.id, customers.name, customers.email, customers.image_url
ORDER BY customers.name ASC
LIMIT ? OFFSET ?`

	filteredCustomersCountQuery = `
SELECT COUNT(*)
FROM customers
WHERE customers.name LIKE ? OR customers.email LIKE ?`
)

// Repository exposes the dashboard's data-access functions over an Executor.
// Every call is an independent unit of work: a fresh query, no shared state,
// no retries, no caching. Store errors propagate to the caller unchanged.
type Repository struct {
	db      Executor
	noStore cache.Control
}

// NewRepository wires a Repository over db. A nil control defaults to the
// context-marker directive used by the HTTP layer.
func NewRepository(db Executor, noStore cache.Control) *Repository {
	if noStore == nil {
		noStore = cache.ContextControl{}
	}
	return &Repository{db: db, noStore: noStore}
}

// FetchRevenue returns the full revenue series, untransformed. A store that
// returns no rows yields a nil slice; callers decide how to render absence.
func (r *Repository) FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error) {
	r.noStore.NoStore(ctx)

	rows, err := r.db.QueryContext(ctx, revenueQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch revenue: %w", err)
	}
	defer rows.Close()

	var points []core.RevenuePoint
	for rows.Next() {
		var p core.RevenuePoint
		if err := rows.Scan(&p.Month, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue rows: %w", err)
	}
	return points, nil
}

// FetchLatestInvoices returns the five most recent invoices joined with
// customer display fields, amounts formatted as currency strings.
func (r *Repository) FetchLatestInvoices(ctx context.Context) ([]core.InvoiceSummary, error) {
	r.noStore.NoStore(ctx)

	rows, err := r.db.QueryContext(ctx, latestInvoicesQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch latest invoices: %w", err)
	}
	defer rows.Close()

	var invoices []core.InvoiceSummary
	for rows.Next() {
		var inv core.InvoiceSummary
		var cents int64
		if err := rows.Scan(&cents, &inv.Name, &inv.ImageURL, &inv.Email, &inv.ID); err != nil {
			return nil, fmt.Errorf("scan latest invoice row: %w", err)
		}
		inv.Amount = format.Currency(cents)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest invoice rows: %w", err)
	}
	return invoices, nil
}

// FetchCardData gathers the dashboard card aggregates. Its three queries are
// independent and run concurrently; if any one fails the whole call fails.
// NULL counts coerce to 0 and NULL sums to "$0.00" — this is the only place
// in the layer that coerces missing aggregates.
func (r *Repository) FetchCardData(ctx context.Context) (core.CardSummary, error) {
	r.noStore.NoStore(ctx)

	var invoiceCount, customerCount, paid, pending sql.NullInt64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, invoiceCountQuery).Scan(&invoiceCount); err != nil {
			return fmt.Errorf("count invoices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, customerCountQuery).Scan(&customerCount); err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, invoiceStatusQuery).Scan(&paid, &pending); err != nil {
			return fmt.Errorf("sum invoice totals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.CardSummary{}, fmt.Errorf("fetch card data: %w", err)
	}

	return core.CardSummary{
		NumberOfCustomers:    customerCount.Int64,
		NumberOfInvoices:     invoiceCount.Int64,
		TotalPaidInvoices:    format.Currency(paid.Int64),
		TotalPendingInvoices: format.Currency(pending.Int64),
	}, nil
}

// FetchFilteredInvoices returns one page of invoices whose customer name,
// email, amount, date, or status contains the search term, newest first.
// Amounts stay in cents here; the invoice table formats them at render time.
func (r *Repository) FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]core.InvoiceRow, error) {
	r.noStore.NoStore(ctx)

	offset := (currentPage - 1) * InvoicesPerPage
	pattern := likePattern(query)

	rows, err := r.db.QueryContext(ctx, filteredInvoicesQuery,
		pattern, pattern, pattern, pattern, pattern, InvoicesPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch filtered invoices: %w", err)
	}
	defer rows.Close()

	var invoices []core.InvoiceRow
	for rows.Next() {
		var inv core.InvoiceRow
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.Name, &inv.Email,
			&inv.ImageURL, &inv.Date, &inv.Amount, &inv.Status); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}
	return invoices, nil
}

// FetchInvoicesPages counts invoices matching the same predicate as
// FetchFilteredInvoices and converts the count into whole pages.
func (r *Repository) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	r.noStore.NoStore(ctx)

	pattern := likePattern(query)
	var count sql.NullInt64
	err := r.db.QueryRowContext(ctx, filteredInvoicesCountQuery,
		pattern, pattern, pattern, pattern, pattern).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count filtered invoices: %w", err)
	}
	return pages(count.Int64, InvoicesPerPage), nil
}

// FetchInvoiceByID loads a single invoice for editing, converting the stored
// cents into dollars. Zero rows is an expected outcome and surfaces as
// core.ErrNotFound, never as a query error.
func (r *Repository) FetchInvoiceByID(ctx context.Context, id string) (core.InvoiceForm, error) {
	r.noStore.NoStore(ctx)

	var inv core.InvoiceForm
	var cents int64
	err := r.db.QueryRowContext(ctx, invoiceByIDQuery, id).
		Scan(&inv.ID, &inv.CustomerID, &cents, &inv.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return core.InvoiceForm{}, core.ErrNotFound
	}
	if err != nil {
		return core.InvoiceForm{}, fmt.Errorf("fetch invoice %s: %w", id, err)
	}

	inv.Amount, _ = decimal.New(cents, -2).Float64()
	return inv, nil
}

// FetchCustomers returns every customer's id and name, ordered by name.
func (r *Repository) FetchCustomers(ctx context.Context) ([]core.CustomerField, error) {
	r.noStore.NoStore(ctx)

	rows, err := r.db.QueryContext(ctx, customersQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}
	defer rows.Close()

	var customers []core.CustomerField
	for rows.Next() {
		var c core.CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}
	return customers, nil
}

// FetchFilteredCustomers returns one page of customers matching the search
// term by name or email, each with invoice count and paid/pending totals.
// Customers without invoices sum to NULL, which formats as "$0.00".
func (r *Repository) FetchFilteredCustomers(ctx context.Context, query string, currentPage int) ([]core.CustomerSummary, error) {
	r.noStore.NoStore(ctx)

	offset := (currentPage - 1) * CustomersPerPage
	pattern := likePattern(query)

	rows, err := r.db.QueryContext(ctx, filteredCustomersQuery,
		pattern, pattern, CustomersPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch filtered customers: %w", err)
	}
	defer rows.Close()

	var customers []core.CustomerSummary
	for rows.Next() {
		var c core.CustomerSummary
		var totalPending, totalPaid sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL,
			&c.TotalInvoices, &totalPending, &totalPaid); err != nil {
			return nil, fmt.Errorf("scan customer summary row: %w", err)
		}
		c.TotalPending = format.Currency(totalPending.Int64)
		c.TotalPaid = format.Currency(totalPaid.Int64)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer summary rows: %w", err)
	}
	return customers, nil
}

// FetchCustomersPages counts customers matching the search term by name or
// email and converts the count into whole pages.
func (r *Repository) FetchCustomersPages(ctx context.Context, query string) (int, error) {
	r.noStore.NoStore(ctx)

	pattern := likePattern(query)
	var count sql.NullInt64
	err := r.db.QueryRowContext(ctx, filteredCustomersCountQuery, pattern, pattern).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count filtered customers: %w", err)
	}
	return pages(count.Int64, CustomersPerPage), nil
}

// likePattern wraps a raw search term for substring matching. SQLite's LIKE
// is case-insensitive for ASCII, which covers the search fields here.
func likePattern(query string) string {
	return "%" + query + "%"
}

// pages converts a row count into a page count: ceil(count / perPage),
// with zero rows yielding zero pages.
func pages(count int64, perPage int) int {
	return int((count + int64(perPage) - 1) / int64(perPage))
}
