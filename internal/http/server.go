// Package http exposes the dashboard data layer as a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/services"
)

// DashboardReader serves the dashboard overview page.
type DashboardReader interface {
	FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error)
	FetchLatestInvoices(ctx context.Context) ([]core.InvoiceSummary, error)
	FetchCardData(ctx context.Context) (core.CardSummary, error)
}

// InvoiceReader serves the invoice table and edit form.
type InvoiceReader interface {
	FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]core.InvoiceRow, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (core.InvoiceForm, error)
}

// CustomerReader serves customer selects and the customer table.
type CustomerReader interface {
	FetchCustomers(ctx context.Context) ([]core.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string, currentPage int) ([]core.CustomerSummary, error)
	FetchCustomersPages(ctx context.Context, query string) (int, error)
}

// InvoiceWriter handles invoice mutations. *services.InvoiceService
// implements it; nil disables the mutation routes.
type InvoiceWriter interface {
	CreateInvoice(ctx context.Context, in services.CreateInvoiceInput) (string, error)
	UpdateInvoice(ctx context.Context, inv core.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}

// Server routes dashboard API requests to the data layer.
type Server struct {
	dash      DashboardReader
	invoices  InvoiceReader
	customers CustomerReader
	writer    InvoiceWriter
	logger    *applog.Logger
	mux       *http.ServeMux
}

func NewServer(dash DashboardReader, invoices InvoiceReader, customers CustomerReader, writer InvoiceWriter, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.Config{Component: applog.ComponentHTTP})
	}
	s := &Server{
		dash:      dash,
		invoices:  invoices,
		customers: customers,
		writer:    writer,
		logger:    logger.WithComponent(applog.ComponentHTTP),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dashboard/cards", s.handleCards)
	mux.HandleFunc("GET /api/dashboard/revenue", s.handleRevenue)
	mux.HandleFunc("GET /api/dashboard/latest-invoices", s.handleLatestInvoices)

	mux.HandleFunc("GET /api/invoices", s.handleInvoiceList)
	mux.HandleFunc("GET /api/invoices/{id}", s.handleInvoiceByID)

	mux.HandleFunc("GET /api/customers", s.handleCustomerList)
	mux.HandleFunc("GET /api/customers/filtered", s.handleFilteredCustomers)

	if s.writer != nil {
		mux.HandleFunc("POST /api/invoices", s.handleInvoiceCreate)
		mux.HandleFunc("PUT /api/invoices/{id}", s.handleInvoiceUpdate)
		mux.HandleFunc("DELETE /api/invoices/{id}", s.handleInvoiceDelete)
	}

	s.mux = mux
}

// Handler returns the server's handler chain: request ID, then logging,
// then routing.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withLogging(s.mux))
}

// HTTPServer builds an http.Server with sane timeouts around the
// handler chain; the caller runs and shuts it down.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}
