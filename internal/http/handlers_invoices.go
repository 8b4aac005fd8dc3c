package http

import (
	"encoding/json"
	"net/http"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/pagination"
	"finboard/internal/services"
)

// invoiceListResponse is one page of the invoice table plus everything the
// page selector needs.
type invoiceListResponse struct {
	Invoices   []core.InvoiceRow  `json:"invoices"`
	TotalPages int                `json:"total_pages"`
	Pagination []pagination.Token `json:"pagination"`
}

// handleInvoiceList returns a filtered, paginated slice of the invoice table.
func (s *Server) handleInvoiceList(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	query := r.URL.Query().Get("query")
	page := parsePage(r)

	invoices, err := s.invoices.FetchFilteredInvoices(ctx, query, page)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch filtered invoices", "error", err, "query", query, "page", page)
		writeError(w, err)
		return
	}

	totalPages, err := s.invoices.FetchInvoicesPages(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to count invoice pages", "error", err, "query", query)
		writeError(w, err)
		return
	}

	writeJSON(w, marker, http.StatusOK, invoiceListResponse{
		Invoices:   invoices,
		TotalPages: totalPages,
		Pagination: pagination.Generate(page, totalPages),
	})
}

// handleInvoiceByID returns a single invoice for the edit form.
func (s *Server) handleInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	inv, err := s.invoices.FetchInvoiceByID(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, marker, http.StatusOK, inv)
}

type invoicePayload struct {
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// handleInvoiceCreate accepts a new invoice and returns its assigned ID.
func (s *Server) handleInvoiceCreate(w http.ResponseWriter, r *http.Request) {
	var payload invoicePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := s.writer.CreateInvoice(r.Context(), services.CreateInvoiceInput{
		CustomerID: payload.CustomerID,
		Amount:     payload.Amount,
		Status:     core.InvoiceStatus(payload.Status),
		Date:       payload.Date,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to create invoice", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, nil, http.StatusCreated, map[string]string{"id": id})
}

// handleInvoiceUpdate rewrites an existing invoice.
func (s *Server) handleInvoiceUpdate(w http.ResponseWriter, r *http.Request) {
	var payload invoicePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.writer.UpdateInvoice(r.Context(), core.Invoice{
		ID:         r.PathValue("id"),
		CustomerID: payload.CustomerID,
		Amount:     payload.Amount,
		Status:     core.InvoiceStatus(payload.Status),
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update invoice", "error", err, "id", r.PathValue("id"))
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleInvoiceDelete removes an invoice.
func (s *Server) handleInvoiceDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.writer.DeleteInvoice(r.Context(), r.PathValue("id")); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete invoice", "error", err, "id", r.PathValue("id"))
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
