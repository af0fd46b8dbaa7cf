package httpx

import (
	"net/http"

	"github.com/ariefcatur/lawfirm-shop/internal/checkout"
)

type PaymentReq struct {
	Method checkout.PaymentMethod `json:"paymentMethod"`
	Info   checkout.PaymentInfo   `json:"paymentInfo"`
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	wz, err := h.Checkout.Wizard(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wz)
}

func (h *Handler) setShipping(w http.ResponseWriter, r *http.Request) {
	var req checkout.ShippingInfo
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.updateWizard(w, r, func(wz *checkout.Wizard) error { return wz.SetShipping(req) })
}

func (h *Handler) setPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentReq
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.updateWizard(w, r, func(wz *checkout.Wizard) error { return wz.SetPayment(req.Method, req.Info) })
}

func (h *Handler) nextStep(w http.ResponseWriter, r *http.Request) {
	h.updateWizard(w, r, (*checkout.Wizard).Next)
}

func (h *Handler) previousStep(w http.ResponseWriter, r *http.Request) {
	h.updateWizard(w, r, (*checkout.Wizard).Previous)
}

func (h *Handler) resetCheckout(w http.ResponseWriter, r *http.Request) {
	h.updateWizard(w, r, func(wz *checkout.Wizard) error {
		wz.Reset()
		return nil
	})
}

func (h *Handler) updateWizard(w http.ResponseWriter, r *http.Request, fn func(*checkout.Wizard) error) {
	wz, err := h.Checkout.Update(r.Context(), bucket(r), fn)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wz)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	o, err := h.Checkout.Confirm(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.Checkout.Orders(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
