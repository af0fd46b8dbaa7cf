package httpx

import (
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/booking"
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/checkout"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Store      storage.Store
	Catalog    *catalog.Catalog
	Bookings   *booking.Service
	Checkout   *checkout.Service
	SessionTTL time.Duration
	Log        *zap.Logger
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(Sessions(h.Store, h.SessionTTL))

		r.Get("/catalog", h.listCatalog)
		r.Get("/catalog/categories", h.listCategories)
		r.Get("/catalog/{type}/{id}", h.getItem)

		r.Get("/cart", h.getCart)
		r.Delete("/cart", h.clearCart)
		r.Post("/cart/items", h.addCartItem)
		r.Patch("/cart/items/{type}/{id}", h.updateCartItem)
		r.Delete("/cart/items/{type}/{id}", h.removeCartItem)

		r.Get("/wishlist", h.getWishlist)
		r.Put("/wishlist/{id}", h.addWishlist)
		r.Delete("/wishlist/{id}", h.removeWishlist)
		r.Get("/recently-viewed", h.recentlyViewed)

		r.Get("/calendar", h.calendar)
		r.Get("/calendar/slots", h.slots)
		r.Get("/bookings/quote", h.quote)
		r.Post("/bookings", h.book)
		r.Get("/bookings", h.listBookings)

		r.Get("/checkout", h.getCheckout)
		r.Put("/checkout/shipping", h.setShipping)
		r.Put("/checkout/payment", h.setPayment)
		r.Post("/checkout/next", h.nextStep)
		r.Post("/checkout/previous", h.previousStep)
		r.Post("/checkout/confirm", h.confirm)
		r.Post("/checkout/reset", h.resetCheckout)
		r.Get("/orders", h.listOrders)

		r.Get("/theme", h.getTheme)
		r.Put("/theme", h.setTheme)
		r.Get("/notifications", h.listNotifications)
	})
}
