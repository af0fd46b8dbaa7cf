package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderConfirmed   = "OrderConfirmed"
	EventBookingConfirmed = "BookingConfirmed"
)

const (
	TopicOrderConfirmed   = "shop.order.confirmed"
	TopicBookingConfirmed = "shop.booking.confirmed"
)

// TopicFor maps an event type to its topic; unknown types map to "".
func TopicFor(eventType string) string {
	switch eventType {
	case EventOrderConfirmed:
		return TopicOrderConfirmed
	case EventBookingConfirmed:
		return TopicBookingConfirmed
	}
	return ""
}

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order or booking id
	SessionID     string          `json:"session_id"`
	Payload       json.RawMessage `json:"payload"`
}

func New(producer, eventType, sessionID, correlationID string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		SessionID:     sessionID,
		CorrelationID: correlationID,
		Payload:       b,
	}, nil
}

type OrderConfirmedPayload struct {
	OrderID       string  `json:"order_id"`
	ItemCount     int     `json:"item_count"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
}

type BookingConfirmedPayload struct {
	BookingID string  `json:"booking_id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Type      string  `json:"type"`
	Service   string  `json:"service"`
	Price     float64 `json:"price"`
}

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// Discard drops every event; used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Envelope) error { return nil }
