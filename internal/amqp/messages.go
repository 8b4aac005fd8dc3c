package amqp

import (
	"encoding/json"
	"time"
)

// Invoice event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// InvoiceEvent is a lightweight change notification. It carries only the
// invoice ID and action; consumers fetch the current row from the store.
type InvoiceEvent struct {
	InvoiceID string    `json:"invoice_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewInvoiceEvent creates an event stamped with the current time.
func NewInvoiceEvent(invoiceID, action string) *InvoiceEvent {
	return &InvoiceEvent{
		InvoiceID: invoiceID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *InvoiceEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// InvoiceEventFromJSON decodes an event from JSON bytes.
func InvoiceEventFromJSON(data []byte) (*InvoiceEvent, error) {
	var ev InvoiceEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
