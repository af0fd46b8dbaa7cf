package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/booking"
)

type CalendarResp struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []booking.Day `json:"days"`
}

type SlotsResp struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type QuoteResp struct {
	Service string                  `json:"service"`
	Type    booking.AppointmentType `json:"type"`
	Urgency booking.Urgency         `json:"urgency"`
	Price   float64                 `json:"price"`
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	today := h.Bookings.Today()
	year, month := today.Year(), int(today.Month())
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 9999 {
			h.respondError(w, r, fmt.Errorf("%w: bad year %q", errBadRequest, v))
			return
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			h.respondError(w, r, fmt.Errorf("%w: bad month %q", errBadRequest, v))
			return
		}
		month = n
	}
	writeJSON(w, http.StatusOK, CalendarResp{
		Year:  year,
		Month: month,
		Days:  h.Bookings.Calendar(year, time.Month(month)),
	})
}

func (h *Handler) slots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slots, err := h.Bookings.Slots(date)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SlotsResp{Date: date, Slots: slots})
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp := QuoteResp{
		Service: q.Get("service"),
		Type:    booking.AppointmentType(q.Get("type")),
		Urgency: booking.Urgency(q.Get("urgency")),
	}
	price, err := h.Bookings.Quote(resp.Service, resp.Type, resp.Urgency)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	resp.Price = price
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) book(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	bk, err := h.Bookings.Book(r.Context(), bucket(r), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bk)
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Bookings.List(r.Context(), bucket(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
