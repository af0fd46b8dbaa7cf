package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/cart"
	"github.com/ariefcatur/lawfirm-shop/internal/events"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrInFlight  = errors.New("payment already in progress")
)

type Service struct {
	Processor PaymentProcessor
	Events    events.Publisher
	Now       func() time.Time
	Producer  string
	Log       *zap.Logger

	inflight sync.Map // session id -> struct{}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Wizard loads the session's checkout, starting a new one when none is stored.
func (s *Service) Wizard(ctx context.Context, b storage.Bucket) (Wizard, error) {
	w := NewWizard()
	if _, err := storage.LoadJSON(ctx, b, storage.KeyCheckout, &w); err != nil {
		return Wizard{}, err
	}
	if !w.consistent() {
		w = NewWizard()
	}
	return w, nil
}

// Update applies fn to the stored wizard and saves it when fn succeeds.
func (s *Service) Update(ctx context.Context, b storage.Bucket, fn func(*Wizard) error) (Wizard, error) {
	w, err := s.Wizard(ctx, b)
	if err != nil {
		return Wizard{}, err
	}
	if err := fn(&w); err != nil {
		return w, err
	}
	if err := storage.SaveJSON(ctx, b, storage.KeyCheckout, w); err != nil {
		return Wizard{}, err
	}
	return w, nil
}

// Confirm pays for the cart and records the order. The order list, the cart
// minus the ordered entries and the finished wizard are written in one batch.
func (s *Service) Confirm(ctx context.Context, b storage.Bucket) (Order, error) {
	if _, busy := s.inflight.LoadOrStore(b.Session(), struct{}{}); busy {
		return Order{}, ErrInFlight
	}
	defer s.inflight.Delete(b.Session())

	w, err := s.Wizard(ctx, b)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(w.Step, StepSuccess) {
		return Order{}, fmt.Errorf("%w: confirm at %s", ErrIllegalTransition, w.Step)
	}

	c, err := cart.Open(ctx, b)
	if err != nil {
		return Order{}, err
	}
	items := c.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	now := s.now()
	order := Order{
		ID:            "ORDER-" + strconv.FormatInt(now.UnixMilli(), 10),
		Items:         items,
		Total:         cart.Total(items),
		ShippingInfo:  w.Shipping,
		PaymentMethod: w.Method,
		PaymentInfo:   w.Payment.Masked(w.Method),
		Status:        OrderStatusConfirmed,
		CreatedAt:     now.UTC(),
	}
	if order.PaymentMethod == MethodCash {
		order.PaymentInfo.CashAmount = order.Total
	}

	if err := s.Processor.Process(ctx, order); err != nil {
		return Order{}, fmt.Errorf("process payment: %w", err)
	}

	// the cart may have changed while payment was pending
	current, err := cart.Open(ctx, b)
	if err != nil {
		return Order{}, err
	}
	orders, err := s.Orders(ctx, b)
	if err != nil {
		return Order{}, err
	}
	if err := w.complete(order.ID); err != nil {
		return Order{}, err
	}

	batch := storage.Batch{}
	if err := batch.Put(storage.KeyOrders, append(orders, order)); err != nil {
		return Order{}, err
	}
	if err := batch.Put(storage.KeyCart, cart.Without(current.Items(), items)); err != nil {
		return Order{}, err
	}
	if err := batch.Put(storage.KeyCheckout, w); err != nil {
		return Order{}, err
	}
	if err := batch.Commit(ctx, b); err != nil {
		return Order{}, err
	}

	s.publish(ctx, b.Session(), order)
	s.logger().Info("order confirmed",
		zap.String("order_id", order.ID),
		zap.String("method", string(order.PaymentMethod)),
		zap.Float64("total", order.Total))
	return order, nil
}

func (s *Service) Orders(ctx context.Context, b storage.Bucket) ([]Order, error) {
	var orders []Order
	if _, err := storage.LoadJSON(ctx, b, storage.KeyOrders, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func (s *Service) publish(ctx context.Context, session string, o Order) {
	if s.Events == nil {
		return
	}
	env, err := events.New(s.Producer, events.EventOrderConfirmed, session, o.ID, events.OrderConfirmedPayload{
		OrderID:       o.ID,
		ItemCount:     cart.ItemCount(o.Items),
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
	})
	if err == nil {
		err = s.Events.Publish(ctx, env)
	}
	if err != nil {
		s.logger().Warn("publish order event", zap.String("order_id", o.ID), zap.Error(err))
	}
}
