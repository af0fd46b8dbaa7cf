package httpx

import (
	"bytes"
	"context"
	"io"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/booking"
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/checkout"
	"github.com/ariefcatur/lawfirm-shop/internal/events"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var refNow = time.Date(2024, time.November, 13, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newTestServerWithStore(t)
	return srv
}

func newTestServerWithStore(t *testing.T) (*httptest.Server, storage.Store) {
	t.Helper()
	log := zap.NewNop()
	store := storage.NewMemoryStore()
	now := func() time.Time { return refNow }
	cat := catalog.Default()
	h := &Handler{
		Store:   store,
		Catalog: cat,
		Bookings: &booking.Service{
			Catalog:   cat,
			Submitter: booking.SimulatedSubmitter{},
			Events:    events.Discard{},
			Occupied:  booking.DefaultOccupied,
			Location:  time.UTC,
			Now:       now,
			Log:       log,
		},
		Checkout: &checkout.Service{
			Processor: checkout.SimulatedProcessor{},
			Events:    events.Discard{},
			Now:       now,
			Log:       log,
		},
		SessionTTL: time.Hour,
		Log:        log,
	}
	r := NewRouter(log)
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

type client struct {
	t       *testing.T
	base    string
	session string
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	require.NoError(c.t, err)
	if c.session != "" {
		req.Header.Set(SessionHeader, c.session)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (c *client) json(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()
	resp := c.do(method, path, body)
	require.Equal(c.t, wantStatus, resp.StatusCode, "%s %s", method, path)
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSession_IssuedWhenMissing(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	resp := c.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sid := resp.Header.Get(SessionHeader)
	assert.NotEmpty(t, sid)

	var found bool
	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie {
			found = true
			assert.Equal(t, sid, ck.Value)
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found)

	var view CartView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}

func TestCart_Flow(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var view CartView
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "producto-2", Type: catalog.TypeProduct}, http.StatusOK, &view)
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "producto-2", Type: catalog.TypeProduct}, http.StatusOK, &view)
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "curso-1", Type: catalog.TypeCourse}, http.StatusOK, &view)
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "curso-1", Type: catalog.TypeCourse}, http.StatusOK, &view)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 1, view.Items[1].Quantity)
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, 359.97, view.Total)

	c.json(http.MethodPatch, "/cart/items/course/curso-1", map[string]int{"quantity": 5}, http.StatusOK, &view)
	assert.Equal(t, 1, view.Items[1].Quantity)

	c.json(http.MethodPatch, "/cart/items/product/producto-2", map[string]int{"quantity": 0}, http.StatusOK, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "curso-1", view.Items[0].ID)

	c.json(http.MethodDelete, "/cart/items/course/curso-1", nil, http.StatusOK, &view)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	other := &client{t: t, base: srv.URL, session: "s2"}
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "ebook-1", Type: catalog.TypeEbook}, http.StatusOK, nil)
	other.json(http.MethodGet, "/cart", nil, http.StatusOK, &view)
	assert.Empty(t, view.Items)
}

func TestCart_Errors(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var body errorBody
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "ebook-9", Type: catalog.TypeEbook}, http.StatusNotFound, &body)
	assert.Equal(t, "item_not_found", body.Code)

	c.json(http.MethodPatch, "/cart/items/product/producto-1", map[string]string{}, http.StatusBadRequest, &body)
	assert.Equal(t, "bad_request", body.Code)

	resp := c.do(http.MethodPost, "/cart/items", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalog(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var items []catalog.Item
	c.json(http.MethodGet, "/catalog?type=ebook&max=40", nil, http.StatusOK, &items)
	require.Len(t, items, 2)

	c.json(http.MethodGet, "/catalog?min=abc", nil, http.StatusBadRequest, nil)

	var it catalog.Item
	c.json(http.MethodGet, "/catalog/masterclass/masterclass-2", nil, http.StatusOK, &it)
	assert.Equal(t, 199.99, it.Price)
	c.json(http.MethodGet, "/catalog/ebook/ebook-3", nil, http.StatusOK, &it)
	c.json(http.MethodGet, "/catalog/ebook/masterclass-2", nil, http.StatusNotFound, nil)

	var recent []string
	c.json(http.MethodGet, "/recently-viewed", nil, http.StatusOK, &recent)
	assert.Equal(t, []string{"ebook-3", "masterclass-2"}, recent)

	var cats []string
	c.json(http.MethodGet, "/catalog/categories", nil, http.StatusOK, &cats)
	assert.Contains(t, cats, "Derecho Penal")
}

func TestWishlist(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var ids []string
	c.json(http.MethodPut, "/wishlist/ebook-1", nil, http.StatusOK, &ids)
	c.json(http.MethodPut, "/wishlist/ebook-1", nil, http.StatusOK, &ids)
	c.json(http.MethodPut, "/wishlist/curso-2", nil, http.StatusOK, &ids)
	assert.Equal(t, []string{"ebook-1", "curso-2"}, ids)

	c.json(http.MethodDelete, "/wishlist/ebook-1", nil, http.StatusOK, &ids)
	assert.Equal(t, []string{"curso-2"}, ids)
}

func TestCheckout_CashFlow(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "ebook-1", Type: catalog.TypeEbook}, http.StatusOK, nil)
	c.json(http.MethodPost, "/cart/items", AddCartItemReq{ID: "producto-2", Type: catalog.TypeProduct}, http.StatusOK, nil)

	var wz checkout.Wizard
	c.json(http.MethodGet, "/checkout", nil, http.StatusOK, &wz)
	assert.Equal(t, checkout.StepShipping, wz.Step)

	var body errorBody
	c.json(http.MethodPost, "/checkout/next", nil, http.StatusUnprocessableEntity, &body)
	assert.Equal(t, "shipping_incomplete", body.Code)
	c.json(http.MethodPost, "/checkout/confirm", nil, http.StatusConflict, &body)
	assert.Equal(t, "illegal_transition", body.Code)

	shipping := wz.Shipping
	shipping.FirstName, shipping.LastName = "Wilson", "Ipiales"
	shipping.Email, shipping.Phone = "wilson@example.com", "0988888888"
	c.json(http.MethodPut, "/checkout/shipping", shipping, http.StatusOK, &wz)
	c.json(http.MethodPost, "/checkout/next", nil, http.StatusOK, &wz)
	assert.Equal(t, checkout.StepPayment, wz.Step)

	c.json(http.MethodPut, "/checkout/payment", PaymentReq{Method: "crypto"}, http.StatusUnprocessableEntity, &body)
	assert.Equal(t, "unknown_method", body.Code)
	c.json(http.MethodPut, "/checkout/payment", PaymentReq{Method: checkout.MethodCash}, http.StatusOK, &wz)
	c.json(http.MethodPost, "/checkout/next", nil, http.StatusOK, &wz)
	assert.Equal(t, checkout.StepConfirmation, wz.Step)

	var order checkout.Order
	c.json(http.MethodPost, "/checkout/confirm", nil, http.StatusCreated, &order)
	assert.Equal(t, checkout.OrderStatusConfirmed, order.Status)
	assert.Equal(t, 129.98, order.Total)

	var view CartView
	c.json(http.MethodGet, "/cart", nil, http.StatusOK, &view)
	assert.Empty(t, view.Items)

	var orders []checkout.Order
	c.json(http.MethodGet, "/orders", nil, http.StatusOK, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	c.json(http.MethodPost, "/checkout/previous", nil, http.StatusConflict, nil)
	c.json(http.MethodPost, "/checkout/reset", nil, http.StatusOK, &wz)
	assert.Equal(t, checkout.StepShipping, wz.Step)
	assert.Equal(t, "Wilson", wz.Shipping.FirstName)
}

func TestBooking(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var cal CalendarResp
	c.json(http.MethodGet, "/calendar", nil, http.StatusOK, &cal)
	assert.Equal(t, 2024, cal.Year)
	assert.Equal(t, 11, cal.Month)
	assert.Len(t, cal.Days, booking.GridCells)
	c.json(http.MethodGet, "/calendar?month=13", nil, http.StatusBadRequest, nil)

	var slots SlotsResp
	c.json(http.MethodGet, "/calendar/slots?date=2024-11-14", nil, http.StatusOK, &slots)
	assert.NotContains(t, slots.Slots, "09:00")
	var body errorBody
	c.json(http.MethodGet, "/calendar/slots?date=2024-11-17", nil, http.StatusUnprocessableEntity, &body)
	assert.Equal(t, "date_unavailable", body.Code)

	var q QuoteResp
	c.json(http.MethodGet, "/bookings/quote?service=legal_advice&type=virtual&urgency=urgent", nil, http.StatusOK, &q)
	assert.Equal(t, 128.0, q.Price)

	req := booking.Request{
		Date: "2024-11-14", Time: "10:00", Type: booking.TypeVirtual, Service: "legal_advice",
		Client: booking.Client{Name: "Ana", Email: "ana@example.com", Urgency: booking.UrgencyUrgent},
	}
	var bk booking.Booking
	c.json(http.MethodPost, "/bookings", req, http.StatusCreated, &bk)
	assert.Equal(t, 128.0, bk.Price)
	assert.Equal(t, booking.StatusConfirmed, bk.Status)

	req.Client.Name = ""
	c.json(http.MethodPost, "/bookings", req, http.StatusUnprocessableEntity, &body)
	assert.Equal(t, "missing_fields", body.Code)

	var list []booking.Booking
	c.json(http.MethodGet, "/bookings", nil, http.StatusOK, &list)
	assert.Len(t, list, 1)
}

func TestThemeAndNotifications(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var th ThemeReq
	c.json(http.MethodGet, "/theme", nil, http.StatusOK, &th)
	assert.Equal(t, "light", string(th.Theme))
	c.json(http.MethodPut, "/theme", ThemeReq{Theme: "dark"}, http.StatusOK, nil)
	c.json(http.MethodPut, "/theme", ThemeReq{Theme: "sepia"}, http.StatusUnprocessableEntity, nil)
	c.json(http.MethodGet, "/theme", nil, http.StatusOK, &th)
	assert.Equal(t, "dark", string(th.Theme))

	var list []map[string]any
	c.json(http.MethodGet, "/notifications", nil, http.StatusOK, &list)
	assert.Empty(t, list)
}

func TestCheckout_CardNeverStoredRaw(t *testing.T) {
	srv, store := newTestServerWithStore(t)
	c := &client{t: t, base: srv.URL, session: "s1"}

	var wz checkout.Wizard
	c.json(http.MethodGet, "/checkout", nil, http.StatusOK, &wz)
	shipping := wz.Shipping
	shipping.FirstName, shipping.LastName = "Ana", "Pérez"
	shipping.Email, shipping.Phone = "ana@example.com", "0999999999"
	c.json(http.MethodPut, "/checkout/shipping", shipping, http.StatusOK, nil)
	c.json(http.MethodPost, "/checkout/next", nil, http.StatusOK, nil)

	var body errorBody
	c.json(http.MethodPut, "/checkout/payment", PaymentReq{
		Method: checkout.MethodCard,
		Info:   checkout.PaymentInfo{CardNumber: "4111111111111111", ExpiryDate: "12/30", CardName: "A B"},
	}, http.StatusUnprocessableEntity, &body)
	assert.Equal(t, "payment_incomplete", body.Code)

	c.json(http.MethodPut, "/checkout/payment", PaymentReq{
		Method: checkout.MethodCard,
		Info:   checkout.PaymentInfo{CardNumber: "4111111111111111", ExpiryDate: "12/30", CVV: "123", CardName: "A B"},
	}, http.StatusOK, &wz)
	assert.Equal(t, "****-****-****-1111", wz.Payment.CardNumber)
	assert.Empty(t, wz.Payment.CVV)

	raw, err := store.Get(context.Background(), "s1", storage.KeyCheckout)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "4111111111111111")
	assert.NotContains(t, string(raw), `"cvv"`)

	resp := c.do(http.MethodGet, "/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(got), "4111111111111111")
	assert.Contains(t, string(got), "****-****-****-1111")
}
