// Package notify turns confirmed orders and bookings into per-session
// notifications.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/events"
	kafkax "github.com/ariefcatur/lawfirm-shop/internal/kafka"
	"github.com/ariefcatur/lawfirm-shop/internal/redisx"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Limit caps the stored feed per session.
const Limit = 20

const (
	KindOrder   = "order"
	KindBooking = "booking"
)

type Notification struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Ref     string    `json:"ref"`
	At      time.Time `json:"at"`
}

type Service struct {
	Store storage.Store
	Redis *redis.Client
	Name  string // dedup namespace
	Now   func() time.Time
	Log   *zap.Logger
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Handle is a kafka.Handler for both confirmation topics. Malformed and
// unknown events are dropped so the offset moves on.
func (s *Service) Handle(ctx context.Context, m kafkago.Message) error {
	env, err := kafkax.DecodeEnvelope(m)
	if err != nil {
		s.Log.Warn("drop malformed event", zap.String("topic", m.Topic), zap.Int64("offset", m.Offset), zap.Error(err))
		return nil
	}
	n, ok, err := render(env)
	if err != nil {
		s.Log.Warn("drop event", zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}
	if !ok || env.SessionID == "" {
		return nil
	}

	dkey := redisx.DedupKey(s.Name, env.EventID)
	first, err := redisx.Once(ctx, s.Redis, dkey, redisx.TTLDedup)
	if err != nil {
		return fmt.Errorf("dedup %s: %w", env.EventID, err)
	}
	if !first {
		s.Log.Debug("duplicate event", zap.String("event_id", env.EventID))
		return nil
	}

	n.At = s.now().UTC()
	if err := Push(ctx, storage.Scope(s.Store, env.SessionID), n); err != nil {
		// release the marker so a redelivery can try again
		_ = s.Redis.Del(ctx, dkey).Err()
		return err
	}
	s.Log.Info("notification stored",
		zap.String("event_type", env.EventType),
		zap.String("session_id", env.SessionID),
		zap.String("ref", n.Ref))
	return nil
}

func render(env events.Envelope) (Notification, bool, error) {
	switch env.EventType {
	case events.EventOrderConfirmed:
		p, err := kafkax.UnwrapPayload[events.OrderConfirmedPayload](env.Payload)
		if err != nil {
			return Notification{}, false, err
		}
		return Notification{
			Kind:    KindOrder,
			Message: fmt.Sprintf("¡Orden procesada exitosamente! %s por $%.2f", p.OrderID, p.Total),
			Ref:     p.OrderID,
		}, true, nil
	case events.EventBookingConfirmed:
		p, err := kafkax.UnwrapPayload[events.BookingConfirmedPayload](env.Payload)
		if err != nil {
			return Notification{}, false, err
		}
		return Notification{
			Kind:    KindBooking,
			Message: fmt.Sprintf("¡Cita agendada exitosamente! %s a las %s", p.Date, p.Time),
			Ref:     p.BookingID,
		}, true, nil
	}
	return Notification{}, false, nil
}

// Push prepends n to the session feed, keeping at most Limit entries.
func Push(ctx context.Context, b storage.Bucket, n Notification) error {
	list, err := List(ctx, b)
	if err != nil {
		return err
	}
	list = append([]Notification{n}, list...)
	if len(list) > Limit {
		list = list[:Limit]
	}
	return storage.SaveJSON(ctx, b, storage.KeyNotifications, list)
}

// List returns the feed newest first, never nil.
func List(ctx context.Context, b storage.Bucket) ([]Notification, error) {
	var list []Notification
	if _, err := storage.LoadJSON(ctx, b, storage.KeyNotifications, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Notification{}
	}
	return list, nil
}
