package http

import (
	"net/http"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/format"
)

// handleCards returns the dashboard card aggregates.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	cards, err := s.dash.FetchCardData(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch card data", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, marker, http.StatusOK, cards)
}

// revenueResponse pairs the raw revenue series with its chart axis. Revenue
// stays nil when the store returned nothing, so the client sees null, not [].
type revenueResponse struct {
	Revenue     []core.RevenuePoint `json:"revenue"`
	YAxisLabels []string            `json:"y_axis_labels"`
	TopLabel    int64               `json:"top_label"`
}

// handleRevenue returns the revenue series plus Y-axis labels for the chart.
func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	revenue, err := s.dash.FetchRevenue(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch revenue", "error", err)
		writeError(w, err)
		return
	}

	labels, top := format.YAxis(revenue)
	writeJSON(w, marker, http.StatusOK, revenueResponse{
		Revenue:     revenue,
		YAxisLabels: labels,
		TopLabel:    top,
	})
}

// handleLatestInvoices returns the five most recent invoices for display.
func (s *Server) handleLatestInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, marker := cache.WithMarker(r.Context())

	invoices, err := s.dash.FetchLatestInvoices(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch latest invoices", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, marker, http.StatusOK, invoices)
}
