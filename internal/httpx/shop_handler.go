package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ariefcatur/lawfirm-shop/internal/cart"
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/notify"
	"github.com/ariefcatur/lawfirm-shop/internal/prefs"
	"github.com/ariefcatur/lawfirm-shop/internal/wishlist"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartView struct {
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
}

func viewOf(c *cart.Cart) CartView {
	items := c.Items()
	return CartView{Items: items, Total: cart.Total(items), ItemCount: cart.ItemCount(items)}
}

type AddCartItemReq struct {
	ID   string       `json:"id"`
	Type catalog.Type `json:"type"`
}

type UpdateQuantityReq struct {
	Quantity *int `json:"quantity"`
}

type ThemeReq struct {
	Theme prefs.Theme `json:"theme"`
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{
		Type:     catalog.Type(q.Get("type")),
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	var err error
	if f.MinPrice, err = parsePrice(q.Get("min")); err != nil {
		h.respondError(w, r, err)
		return
	}
	if f.MaxPrice, err = parsePrice(q.Get("max")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Catalog.Find(f))
}

func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: bad price %q", errBadRequest, s)
	}
	return v, nil
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Categories())
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.Catalog.Get(chi.URLParam(r, "id"), catalog.Type(chi.URLParam(r, "type")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := wishlist.Viewed(r.Context(), bucket(r), it.ID); err != nil {
		h.Log.Warn("record view", zap.String("item", it.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := cart.Open(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(c *cart.Cart) error { return c.Clear(r.Context()) })
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemReq
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	it, err := h.Catalog.Get(req.ID, req.Type)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.withCart(w, r, func(c *cart.Cart) error { return c.Add(r.Context(), cart.FromCatalog(it)) })
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityReq
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.Quantity == nil {
		h.respondError(w, r, fmt.Errorf("%w: quantity required", errBadRequest))
		return
	}
	id, t := chi.URLParam(r, "id"), catalog.Type(chi.URLParam(r, "type"))
	h.withCart(w, r, func(c *cart.Cart) error { return c.UpdateQuantity(r.Context(), id, t, *req.Quantity) })
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, t := chi.URLParam(r, "id"), catalog.Type(chi.URLParam(r, "type"))
	h.withCart(w, r, func(c *cart.Cart) error { return c.Remove(r.Context(), id, t) })
}

// withCart opens the session cart, applies fn and replies with the result.
func (h *Handler) withCart(w http.ResponseWriter, r *http.Request, fn func(*cart.Cart) error) {
	c, err := cart.Open(r.Context(), bucket(r))
	if err == nil {
		err = fn(c)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	ids, err := wishlist.New(bucket(r)).IDs(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *Handler) addWishlist(w http.ResponseWriter, r *http.Request) {
	h.editWishlist(w, r, (*wishlist.Wishlist).Add)
}

func (h *Handler) removeWishlist(w http.ResponseWriter, r *http.Request) {
	h.editWishlist(w, r, (*wishlist.Wishlist).Remove)
}

func (h *Handler) editWishlist(w http.ResponseWriter, r *http.Request, op func(*wishlist.Wishlist, context.Context, string) error) {
	wl := wishlist.New(bucket(r))
	if err := op(wl, r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.getWishlist(w, r)
}

func (h *Handler) recentlyViewed(w http.ResponseWriter, r *http.Request) {
	ids, err := wishlist.RecentlyViewed(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	t, err := prefs.GetTheme(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeReq{Theme: t})
}

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeReq
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := prefs.SetTheme(r.Context(), bucket(r), req.Theme); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := notify.List(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
