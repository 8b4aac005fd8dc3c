// Package services orchestrates invoice mutations: persist to the store
// first, then notify downstream consumers over the event channel.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finboard/internal/amqp"
	"finboard/internal/core"
)

// InvoiceStore is the slice of the repository the service writes through.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv core.Invoice) error
	UpdateInvoice(ctx context.Context, inv core.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}

// EventPublisher publishes invoice change events. *amqp.Client implements it.
type EventPublisher interface {
	PublishInvoiceEvent(ctx context.Context, invoiceID, action string) error
}

// InvoiceService writes invoices locally and publishes change events.
// A nil publisher disables events; publish failures never fail the write,
// since the store is the source of truth.
type InvoiceService struct {
	store  InvoiceStore
	events EventPublisher
}

func NewInvoiceService(store InvoiceStore, events EventPublisher) *InvoiceService {
	return &InvoiceService{store: store, events: events}
}

// CreateInvoiceInput carries the form fields for a new invoice. Amount is
// in cents. An empty date defaults to today.
type CreateInvoiceInput struct {
	CustomerID string
	Amount     int64
	Status     core.InvoiceStatus
	Date       string
}

// CreateInvoice assigns a fresh ID, persists the invoice, and publishes a
// created event. It returns the new invoice's ID.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (string, error) {
	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	inv := core.Invoice{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Status:     in.Status,
		Date:       date,
	}

	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		return "", fmt.Errorf("create invoice: %w", err)
	}

	s.publish(ctx, inv.ID, amqp.ActionCreated)
	return inv.ID, nil
}

// UpdateInvoice rewrites an existing invoice and publishes an updated event.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, inv core.Invoice) error {
	if err := s.store.UpdateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	s.publish(ctx, inv.ID, amqp.ActionUpdated)
	return nil
}

// DeleteInvoice removes an invoice and publishes a deleted event.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *InvoiceService) publish(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishInvoiceEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish invoice event",
			"invoice_id", id,
			"action", action,
			"error", err)
	}
}
