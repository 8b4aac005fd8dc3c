package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finboard/internal/cache"
	"finboard/internal/core"
)

// parsePage reads the 1-based "page" query parameter, defaulting to 1.
// Malformed values are not rejected here; the data layer passes them to the
// store, which yields empty results for out-of-range offsets.
func parsePage(r *http.Request) int {
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 1 {
			return p
		}
	}
	return 1
}

// writeJSON encodes v as the response body, adding Cache-Control: no-store
// when the data layer marked this request as never-cacheable.
func writeJSON(w http.ResponseWriter, marker *cache.Marker, status int, v any) {
	if marker != nil && marker.Marked() {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a data-layer error onto an HTTP status. Not-found is the
// only expected failure; everything else surfaces as a distinguishable 500
// so the caller can render an error state instead of an empty page.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyCustomer),
		errors.Is(err, core.ErrInvalidDate):
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
