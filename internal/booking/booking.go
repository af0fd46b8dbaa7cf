package booking

import (
	"context"
	"errors"
	"time"
)

const StatusConfirmed = "confirmed"

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidType     = errors.New("invalid appointment type")
	ErrDateUnavailable = errors.New("date not available")
	ErrSlotUnavailable = errors.New("time slot not available")
)

type Client struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Description string  `json:"description"`
	Urgency     Urgency `json:"urgency"`
}

type Booking struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Type      AppointmentType `json:"type"`
	Service   string          `json:"service"`
	Client    Client          `json:"client"`
	Urgency   Urgency         `json:"urgency"`
	Price     float64         `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Request struct {
	Date    string          `json:"date"`
	Time    string          `json:"time"`
	Type    AppointmentType `json:"type"`
	Service string          `json:"service"`
	Client  Client          `json:"client"`
}

// Submitter hands a validated booking to whatever confirms it.
type Submitter interface {
	Submit(ctx context.Context, b Booking) error
}

// SimulatedSubmitter confirms every booking after a fixed delay.
type SimulatedSubmitter struct{ Delay time.Duration }

func (s SimulatedSubmitter) Submit(ctx context.Context, _ Booking) error {
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
