package http

import (
	"net/http"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/pagination"
)

// handleCustomerList returns every customer's id and name for select inputs.
func (s *Server) handleCustomerList(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	customers, err := s.customers.FetchCustomers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch customers", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, marker, http.StatusOK, customers)
}

// customerListResponse is one page of the customer table plus its selector.
type customerListResponse struct {
	Customers  []core.CustomerSummary `json:"customers"`
	TotalPages int                    `json:"total_pages"`
	Pagination []pagination.Token     `json:"pagination"`
}

// handleFilteredCustomers returns a filtered, paginated slice of the
// customer table with invoice aggregates.
func (s *Server) handleFilteredCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	query := r.URL.Query().Get("query")
	page := parsePage(r)

	customers, err := s.customers.FetchFilteredCustomers(ctx, query, page)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch filtered customers", "error", err, "query", query, "page", page)
		writeError(w, err)
		return
	}

	totalPages, err := s.customers.FetchCustomersPages(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to count customer pages", "error", err, "query", query)
		writeError(w, err)
		return
	}

	writeJSON(w, marker, http.StatusOK, customerListResponse{
		Customers:  customers,
		TotalPages: totalPages,
		Pagination: pagination.Generate(page, totalPages),
	})
}
