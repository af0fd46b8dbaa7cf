package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/cart"
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/events"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type instantProcessor struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *instantProcessor) Process(context.Context, Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

// blockingProcessor holds Process open until release is closed.
type blockingProcessor struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingProcessor) Process(ctx context.Context, _ Order) error {
	close(p.started)
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// hookProcessor runs fn while the payment is pending.
type hookProcessor struct{ fn func(ctx context.Context) error }

func (p hookProcessor) Process(ctx context.Context, _ Order) error { return p.fn(ctx) }

type recordingPublisher struct{ got []events.Envelope }

func (p *recordingPublisher) Publish(_ context.Context, env events.Envelope) error {
	p.got = append(p.got, env)
	return nil
}

var fixedNow = time.Date(2024, time.November, 13, 10, 0, 0, 0, time.UTC)

func newService(p PaymentProcessor) (*Service, *recordingPublisher) {
	pub := &recordingPublisher{}
	return &Service{
		Processor: p,
		Events:    pub,
		Now:       func() time.Time { return fixedNow },
		Producer:  "test",
		Log:       zap.NewNop(),
	}, pub
}

func fillCart(t *testing.T, b storage.Bucket) {
	t.Helper()
	ctx := context.Background()
	c, err := cart.Open(ctx, b)
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, cart.Item{ID: "ebook-1", Type: catalog.TypeEbook, Title: "Guía", Price: 49.99}))
	require.NoError(t, c.Add(ctx, cart.Item{ID: "producto-2", Type: catalog.TypeProduct, Title: "Calculadora", Price: 79.99}))
	require.NoError(t, c.Add(ctx, cart.Item{ID: "producto-2", Type: catalog.TypeProduct, Title: "Calculadora", Price: 79.99}))
}

func toConfirmation(t *testing.T, s *Service, b storage.Bucket, m PaymentMethod, info PaymentInfo) {
	t.Helper()
	ctx := context.Background()
	steps := []func(*Wizard) error{
		func(w *Wizard) error { return w.SetShipping(filledShipping()) },
		func(w *Wizard) error { return w.Next() },
		func(w *Wizard) error { return w.SetPayment(m, info) },
		func(w *Wizard) error { return w.Next() },
	}
	for _, fn := range steps {
		_, err := s.Update(ctx, b, fn)
		require.NoError(t, err)
	}
}

func TestConfirm_CashCheckout(t *testing.T) {
	proc := &instantProcessor{}
	s, pub := newService(proc)
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	fillCart(t, b)
	toConfirmation(t, s, b, MethodCash, PaymentInfo{})

	order, err := s.Confirm(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, "ORDER-1731492000000", order.ID)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, 209.97, order.Total)
	assert.Equal(t, 209.97, order.PaymentInfo.CashAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 1, proc.calls)

	c, err := cart.Open(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, c.Items())

	orders, err := s.Orders(ctx, b)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	w, err := s.Wizard(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, w.Step)
	assert.Equal(t, order.ID, w.OrderID)

	require.Len(t, pub.got, 1)
	assert.Equal(t, events.EventOrderConfirmed, pub.got[0].EventType)
	assert.Equal(t, order.ID, pub.got[0].CorrelationID)
}

func TestConfirm_CardIsMaskedBeforeStorage(t *testing.T) {
	s, _ := newService(&instantProcessor{})
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	fillCart(t, b)
	toConfirmation(t, s, b, MethodCard, PaymentInfo{CardNumber: "4111111111111234", ExpiryDate: "12/27", CVV: "999", CardName: "W I"})

	_, err := s.Confirm(ctx, b)
	require.NoError(t, err)

	raw, err := b.Get(ctx, storage.KeyOrders)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "****-****-****-1234")
	assert.NotContains(t, string(raw), "4111111111111234")
	assert.NotContains(t, string(raw), "999")

	raw, err = b.Get(ctx, storage.KeyCheckout)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "4111111111111234")
}

func TestConfirm_AppendsOneOrderPerCheckout(t *testing.T) {
	s, _ := newService(&instantProcessor{})
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		fillCart(t, b)
		_, err := s.Update(ctx, b, func(w *Wizard) error { w.Reset(); return nil })
		require.NoError(t, err)
		toConfirmation(t, s, b, MethodCash, PaymentInfo{})
		_, err = s.Confirm(ctx, b)
		require.NoError(t, err)

		orders, err := s.Orders(ctx, b)
		require.NoError(t, err)
		assert.Len(t, orders, i)
	}
}

func TestConfirm_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("not at confirmation", func(t *testing.T) {
		s, _ := newService(&instantProcessor{})
		b := storage.Scope(storage.NewMemoryStore(), "sess")
		fillCart(t, b)
		_, err := s.Confirm(ctx, b)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("empty cart", func(t *testing.T) {
		proc := &instantProcessor{}
		s, _ := newService(proc)
		b := storage.Scope(storage.NewMemoryStore(), "sess")
		toConfirmation(t, s, b, MethodCash, PaymentInfo{})
		_, err := s.Confirm(ctx, b)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Zero(t, proc.calls)
	})

	t.Run("after success", func(t *testing.T) {
		s, _ := newService(&instantProcessor{})
		b := storage.Scope(storage.NewMemoryStore(), "sess")
		fillCart(t, b)
		toConfirmation(t, s, b, MethodCash, PaymentInfo{})
		_, err := s.Confirm(ctx, b)
		require.NoError(t, err)
		fillCart(t, b)
		_, err = s.Confirm(ctx, b)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestConfirm_PaymentFailureKeepsCart(t *testing.T) {
	proc := &instantProcessor{err: errors.New("declined")}
	s, pub := newService(proc)
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	fillCart(t, b)
	toConfirmation(t, s, b, MethodCash, PaymentInfo{})

	_, err := s.Confirm(ctx, b)
	assert.ErrorIs(t, err, proc.err)

	c, err := cart.Open(ctx, b)
	require.NoError(t, err)
	assert.Len(t, c.Items(), 2)
	orders, err := s.Orders(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, pub.got)

	w, err := s.Wizard(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, w.Step)
}

func TestConfirm_RejectsConcurrentSubmission(t *testing.T) {
	proc := &blockingProcessor{started: make(chan struct{}), release: make(chan struct{})}
	s, _ := newService(proc)
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	fillCart(t, b)
	toConfirmation(t, s, b, MethodCash, PaymentInfo{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Confirm(ctx, b)
		done <- err
	}()
	<-proc.started

	_, err := s.Confirm(ctx, b)
	assert.ErrorIs(t, err, ErrInFlight)

	close(proc.release)
	require.NoError(t, <-done)

	orders, err := s.Orders(ctx, b)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestWizard_CorruptStateStartsOver(t *testing.T) {
	s, _ := newService(&instantProcessor{})
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, storage.KeyCheckout, []byte(`{"step":9}`)))
	w, err := s.Wizard(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, StepShipping, w.Step)

	require.NoError(t, b.Set(ctx, storage.KeyCheckout, []byte(`nope`)))
	w, err = s.Wizard(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, StepShipping, w.Step)
}

func TestSimulatedProcessor(t *testing.T) {
	assert.NoError(t, SimulatedProcessor{Delay: time.Millisecond}.Process(context.Background(), Order{}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, SimulatedProcessor{Delay: time.Hour}.Process(ctx, Order{}), context.DeadlineExceeded)
}

func TestUpdate_NeverStoresRawCard(t *testing.T) {
	s, _ := newService(&instantProcessor{})
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	ctx := context.Background()

	toConfirmation(t, s, b, MethodCard, PaymentInfo{CardNumber: "4111111111111111", ExpiryDate: "12/30", CVV: "123", CardName: "A B"})

	raw, err := b.Get(ctx, storage.KeyCheckout)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "4111111111111111")
	assert.NotContains(t, string(raw), `"cvv"`)
	assert.Contains(t, string(raw), "****-****-****-1111")

	w, err := s.Wizard(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, w.Step)
}

func TestWizard_InconsistentStateStartsOver(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"type error after step", `{"step":3,"shippingInfo":"garbage"}`},
		{"confirmation without shipping", `{"step":3,"paymentMethod":"cash"}`},
		{"confirmation without payment", `{"step":3,"shippingInfo":{"firstName":"A","lastName":"B","email":"a@b.c","phone":"1"},"paymentMethod":"card"}`},
		{"success without order", `{"step":4,"shippingInfo":{"firstName":"A","lastName":"B","email":"a@b.c","phone":"1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newService(&instantProcessor{})
			b := storage.Scope(storage.NewMemoryStore(), "sess")
			ctx := context.Background()
			fillCart(t, b)
			require.NoError(t, b.Set(ctx, storage.KeyCheckout, []byte(tt.raw)))

			w, err := s.Wizard(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, NewWizard(), w)

			_, err = s.Confirm(ctx, b)
			assert.ErrorIs(t, err, ErrIllegalTransition)
			orders, err := s.Orders(ctx, b)
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestConfirm_KeepsItemsAddedDuringPayment(t *testing.T) {
	b := storage.Scope(storage.NewMemoryStore(), "sess")
	late := cart.Item{ID: "masterclass-1", Type: catalog.TypeMasterclass, Title: "Defensa", Price: 299.99}
	s, _ := newService(hookProcessor{fn: func(ctx context.Context) error {
		c, err := cart.Open(ctx, b)
		if err != nil {
			return err
		}
		if err := c.Add(ctx, late); err != nil {
			return err
		}
		return c.Add(ctx, cart.Item{ID: "producto-2", Type: catalog.TypeProduct, Title: "Calculadora", Price: 79.99})
	}})
	ctx := context.Background()

	fillCart(t, b)
	toConfirmation(t, s, b, MethodCash, PaymentInfo{})

	order, err := s.Confirm(ctx, b)
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)

	c, err := cart.Open(ctx, b)
	require.NoError(t, err)
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "producto-2", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, late.ID, items[1].ID)
}
