package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ariefcatur/lawfirm-shop/internal/booking"
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/checkout"
	"github.com/ariefcatur/lawfirm-shop/internal/prefs"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{errBadRequest, http.StatusBadRequest, "bad_request"},
	{catalog.ErrItemNotFound, http.StatusNotFound, "item_not_found"},
	{booking.ErrMissingFields, http.StatusUnprocessableEntity, "missing_fields"},
	{booking.ErrInvalidType, http.StatusUnprocessableEntity, "invalid_type"},
	{booking.ErrDateUnavailable, http.StatusUnprocessableEntity, "date_unavailable"},
	{booking.ErrSlotUnavailable, http.StatusUnprocessableEntity, "slot_unavailable"},
	{checkout.ErrShippingIncomplete, http.StatusUnprocessableEntity, "shipping_incomplete"},
	{checkout.ErrPaymentIncomplete, http.StatusUnprocessableEntity, "payment_incomplete"},
	{checkout.ErrUnknownMethod, http.StatusUnprocessableEntity, "unknown_method"},
	{checkout.ErrEmptyCart, http.StatusUnprocessableEntity, "empty_cart"},
	{prefs.ErrUnknownTheme, http.StatusUnprocessableEntity, "unknown_theme"},
	{checkout.ErrIllegalTransition, http.StatusConflict, "illegal_transition"},
	{checkout.ErrWrongStep, http.StatusConflict, "wrong_step"},
	{checkout.ErrInFlight, http.StatusConflict, "in_flight"},
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors to status codes. Anything unknown is a 500
// and its detail stays in the log.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			writeJSON(w, e.status, errorBody{Error: err.Error(), Code: e.code})
			return
		}
	}
	h.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: "internal"})
}

const maxBody = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	return nil
}
