package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/services"
)

// stubData implements the reader interfaces over fixed values, issuing the
// cache-bypass directive exactly like the real repository does.
type stubData struct {
	revenue   []core.RevenuePoint
	latest    []core.InvoiceSummary
	cards     core.CardSummary
	rows      []core.InvoiceRow
	form      core.InvoiceForm
	fields    []core.CustomerField
	summaries []core.CustomerSummary
	pages     int

	lastQuery string
	lastPage  int

	err error
}

func (s *stubData) noStore(ctx context.Context) { cache.ContextControl{}.NoStore(ctx) }

func (s *stubData) FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error) {
	s.noStore(ctx)
	return s.revenue, s.err
}

func (s *stubData) FetchLatestInvoices(ctx context.Context) ([]core.InvoiceSummary, error) {
	s.noStore(ctx)
	return s.latest, s.err
}

func (s *stubData) FetchCardData(ctx context.Context) (core.CardSummary, error) {
	s.noStore(ctx)
	return s.cards, s.err
}

func (s *stubData) FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]core.InvoiceRow, error) {
	s.noStore(ctx)
	s.lastQuery, s.lastPage = query, currentPage
	return s.rows, s.err
}

func (s *stubData) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	s.noStore(ctx)
	return s.pages, s.err
}

func (s *stubData) FetchInvoiceByID(ctx context.Context, id string) (core.InvoiceForm, error) {
	s.noStore(ctx)
	if s.err != nil {
		return core.InvoiceForm{}, s.err
	}
	if id != s.form.ID {
		return core.InvoiceForm{}, core.ErrNotFound
	}
	return s.form, nil
}

func (s *stubData) FetchCustomers(ctx context.Context) ([]core.CustomerField, error) {
	s.noStore(ctx)
	return s.fields, s.err
}

func (s *stubData) FetchFilteredCustomers(ctx context.Context, query string, currentPage int) ([]core.CustomerSummary, error) {
	s.noStore(ctx)
	s.lastQuery, s.lastPage = query, currentPage
	return s.summaries, s.err
}

func (s *stubData) FetchCustomersPages(ctx context.Context, query string) (int, error) {
	s.noStore(ctx)
	return s.pages, s.err
}

type stubWriter struct {
	createdID string
	updated   []core.Invoice
	deleted   []string
	err       error
}

func (w *stubWriter) CreateInvoice(context.Context, services.CreateInvoiceInput) (string, error) {
	return w.createdID, w.err
}

func (w *stubWriter) UpdateInvoice(_ context.Context, inv core.Invoice) error {
	if w.err != nil {
		return w.err
	}
	w.updated = append(w.updated, inv)
	return nil
}

func (w *stubWriter) DeleteInvoice(_ context.Context, id string) error {
	if w.err != nil {
		return w.err
	}
	w.deleted = append(w.deleted, id)
	return nil
}

func newTestServer(data *stubData, writer InvoiceWriter) *Server {
	return NewServer(data, data, data, writer, nil)
}

func doRequest(t *testing.T, srv *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func TestCardsEndpoint(t *testing.T) {
	data := &stubData{cards: core.CardSummary{
		NumberOfCustomers:    6,
		NumberOfInvoices:     13,
		TotalPaidInvoices:    "$1,020.48",
		TotalPendingInvoices: "$1,256.32",
	}}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/dashboard/cards", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var got core.CardSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.cards, got)
}

func TestRevenueEndpoint(t *testing.T) {
	jan := "Jan"
	data := &stubData{revenue: []core.RevenuePoint{{Month: &jan, Revenue: 2000}}}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/dashboard/revenue", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var got struct {
		Revenue     []core.RevenuePoint `json:"revenue"`
		YAxisLabels []string            `json:"y_axis_labels"`
		TopLabel    int64               `json:"top_label"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.revenue, got.Revenue)
	assert.Equal(t, []string{"$2K", "$1K", "$0K"}, got.YAxisLabels)
	assert.Equal(t, int64(2000), got.TopLabel)
}

func TestRevenueEndpointNilSeriesStaysNull(t *testing.T) {
	rr := doRequest(t, newTestServer(&stubData{}, nil), http.MethodGet, "/api/dashboard/revenue", nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "null", string(got["revenue"]))
}

func TestLatestInvoicesEndpoint(t *testing.T) {
	data := &stubData{latest: []core.InvoiceSummary{
		{ID: "inv-1", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/a.png", Amount: "$345.77"},
	}}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/dashboard/latest-invoices", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var got []core.InvoiceSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.latest, got)
}

func TestInvoiceListEndpoint(t *testing.T) {
	data := &stubData{
		rows: []core.InvoiceRow{{
			ID: "inv-1", CustomerID: "cust-1", Name: "John Doe",
			Email: "john@doe.com", Date: "2024-03-01", Amount: 34577, Status: core.StatusPending,
		}},
		pages: 10,
	}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/invoices?query=John&page=5", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "John", data.lastQuery)
	assert.Equal(t, 5, data.lastPage)

	var got struct {
		Invoices   []core.InvoiceRow `json:"invoices"`
		TotalPages int               `json:"total_pages"`
		Pagination []struct {
			Page     int  `json:"page"`
			Ellipsis bool `json:"ellipsis"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.rows, got.Invoices)
	assert.Equal(t, 10, got.TotalPages)
	require.Len(t, got.Pagination, 7)
	assert.Equal(t, 1, got.Pagination[0].Page)
	assert.True(t, got.Pagination[1].Ellipsis)
	assert.Equal(t, 5, got.Pagination[3].Page)
}

func TestInvoiceListDefaultsPageToOne(t *testing.T) {
	data := &stubData{pages: 1}
	doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/invoices?page=banana", nil)
	assert.Equal(t, 1, data.lastPage)
}

func TestInvoiceByIDEndpoint(t *testing.T) {
	data := &stubData{form: core.InvoiceForm{
		ID: "inv-7", CustomerID: "cust-2", Amount: 10.5, Status: core.StatusPaid,
	}}
	srv := newTestServer(data, nil)

	rr := doRequest(t, srv, http.MethodGet, "/api/invoices/inv-7", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got core.InvoiceForm
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.form, got)

	rr = doRequest(t, srv, http.MethodGet, "/api/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCustomersEndpoint(t *testing.T) {
	data := &stubData{fields: []core.CustomerField{
		{ID: "cust-1", Name: "Amy Burns"},
	}}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/customers", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var got []core.CustomerField
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.fields, got)
}

func TestFilteredCustomersEndpoint(t *testing.T) {
	data := &stubData{
		summaries: []core.CustomerSummary{{
			ID: "cust-1", Name: "Amy Burns", Email: "amy@burns.com",
			TotalInvoices: 3, TotalPending: "$1,250.00", TotalPaid: "$524.00",
		}},
		pages: 1,
	}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/customers/filtered?query=burns", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "burns", data.lastQuery)

	var got struct {
		Customers  []core.CustomerSummary `json:"customers"`
		TotalPages int                    `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, data.summaries, got.Customers)
	assert.Equal(t, 1, got.TotalPages)
}

func TestStoreErrorIsInternal(t *testing.T) {
	data := &stubData{err: errors.New("database is locked")}
	rr := doRequest(t, newTestServer(data, nil), http.MethodGet, "/api/dashboard/cards", nil)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Contains(t, got["error"], "database is locked")
}

func TestInvoiceCreateEndpoint(t *testing.T) {
	writer := &stubWriter{createdID: "new-id"}
	srv := newTestServer(&stubData{}, writer)

	body, _ := json.Marshal(map[string]any{
		"customer_id": "cust-1",
		"amount":      34577,
		"status":      "pending",
		"date":        "2024-03-01",
	})
	rr := doRequest(t, srv, http.MethodPost, "/api/invoices", body)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "new-id", got["id"])
}

func TestInvoiceCreateBadBody(t *testing.T) {
	srv := newTestServer(&stubData{}, &stubWriter{})
	rr := doRequest(t, srv, http.MethodPost, "/api/invoices", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInvoiceCreateValidationError(t *testing.T) {
	writer := &stubWriter{err: core.ErrInvalidStatus}
	srv := newTestServer(&stubData{}, writer)

	body, _ := json.Marshal(map[string]any{"customer_id": "cust-1", "amount": 1, "status": "overdue"})
	rr := doRequest(t, srv, http.MethodPost, "/api/invoices", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInvoiceUpdateEndpoint(t *testing.T) {
	writer := &stubWriter{}
	srv := newTestServer(&stubData{}, writer)

	body, _ := json.Marshal(map[string]any{"customer_id": "cust-2", "amount": 500, "status": "paid"})
	rr := doRequest(t, srv, http.MethodPut, "/api/invoices/inv-1", body)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, writer.updated, 1)
	assert.Equal(t, "inv-1", writer.updated[0].ID)
	assert.Equal(t, int64(500), writer.updated[0].Amount)
}

func TestInvoiceDeleteEndpoint(t *testing.T) {
	writer := &stubWriter{}
	srv := newTestServer(&stubData{}, writer)

	rr := doRequest(t, srv, http.MethodDelete, "/api/invoices/inv-1", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []string{"inv-1"}, writer.deleted)

	writer.err = core.ErrNotFound
	rr = doRequest(t, srv, http.MethodDelete, "/api/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMutationRoutesDisabledWithoutWriter(t *testing.T) {
	srv := newTestServer(&stubData{}, nil)
	rr := doRequest(t, srv, http.MethodPost, "/api/invoices", []byte("{}"))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(&stubData{}, nil)

	rr := doRequest(t, srv, http.MethodGet, "/api/customers", nil)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("X-Request-ID", "req_caller")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req_caller", rec.Header().Get("X-Request-ID"))
}
