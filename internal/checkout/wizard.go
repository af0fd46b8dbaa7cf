// Package checkout runs the shipping → payment → confirmation wizard and turns
// a confirmed cart into an order.
package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShippingIncomplete = errors.New("shipping information incomplete")
	ErrPaymentIncomplete  = errors.New("payment information incomplete")
	ErrUnknownMethod      = errors.New("unknown payment method")
	ErrIllegalTransition  = errors.New("illegal checkout transition")
	ErrWrongStep          = errors.New("not allowed at this checkout step")
)

type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodPayPal PaymentMethod = "paypal"
	MethodBank   PaymentMethod = "bank"
	MethodCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodPayPal, MethodBank, MethodCash:
		return true
	}
	return false
}

type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	ZipCode   string `json:"zipCode"`
}

// DefaultShipping pre-fills the firm's own city.
func DefaultShipping() ShippingInfo {
	return ShippingInfo{City: "Ibarra", State: "Imbabura", Country: "Ecuador"}
}

func (s ShippingInfo) missing() []string {
	return blank(map[string]string{
		"firstName": s.FirstName,
		"lastName":  s.LastName,
		"email":     s.Email,
		"phone":     s.Phone,
	}, "firstName", "lastName", "email", "phone")
}

type PaymentInfo struct {
	CardNumber  string  `json:"cardNumber,omitempty"`
	ExpiryDate  string  `json:"expiryDate,omitempty"`
	CVV         string  `json:"cvv,omitempty"`
	CardName    string  `json:"cardName,omitempty"`
	PaypalEmail string  `json:"paypalEmail,omitempty"`
	BankAccount string  `json:"bankAccount,omitempty"`
	BankName    string  `json:"bankName,omitempty"`
	CashAmount  float64 `json:"cashAmount,omitempty"`
}

// missing lists the blank fields required by m. The CVV is only checked while
// raw card details are in hand; it is never stored.
func (p PaymentInfo) missing(m PaymentMethod, withCVV bool) []string {
	switch m {
	case MethodCard:
		fields := map[string]string{
			"cardNumber": p.CardNumber,
			"expiryDate": p.ExpiryDate,
			"cvv":        p.CVV,
			"cardName":   p.CardName,
		}
		if withCVV {
			return blank(fields, "cardNumber", "expiryDate", "cvv", "cardName")
		}
		return blank(fields, "cardNumber", "expiryDate", "cardName")
	case MethodPayPal:
		return blank(map[string]string{"paypalEmail": p.PaypalEmail}, "paypalEmail")
	case MethodBank:
		return blank(map[string]string{"bankAccount": p.BankAccount, "bankName": p.BankName}, "bankAccount", "bankName")
	}
	return nil
}

// Wizard is the checkout state of one session.
type Wizard struct {
	Step     Step          `json:"step"`
	Shipping ShippingInfo  `json:"shippingInfo"`
	Method   PaymentMethod `json:"paymentMethod"`
	Payment  PaymentInfo   `json:"paymentInfo"`
	OrderID  string        `json:"orderId,omitempty"`
}

func NewWizard() Wizard {
	return Wizard{Step: StepShipping, Shipping: DefaultShipping(), Method: MethodCard}
}

func (w *Wizard) SetShipping(info ShippingInfo) error {
	if w.Step != StepShipping {
		return fmt.Errorf("%w: shipping at %s", ErrWrongStep, w.Step)
	}
	w.Shipping = info
	return nil
}

// SetPayment checks the details for m and keeps them masked: card numbers
// reduced to their last four digits and no CVV.
func (w *Wizard) SetPayment(m PaymentMethod, info PaymentInfo) error {
	if w.Step != StepPayment {
		return fmt.Errorf("%w: payment at %s", ErrWrongStep, w.Step)
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
	if miss := info.missing(m, true); len(miss) > 0 {
		return fmt.Errorf("%w: %s", ErrPaymentIncomplete, strings.Join(miss, ", "))
	}
	w.Method = m
	w.Payment = info.Masked(m)
	return nil
}

// Next advances one form step. Confirmation only moves on through
// Service.Confirm.
func (w *Wizard) Next() error {
	switch w.Step {
	case StepShipping:
		if miss := w.Shipping.missing(); len(miss) > 0 {
			return fmt.Errorf("%w: %s", ErrShippingIncomplete, strings.Join(miss, ", "))
		}
	case StepPayment:
		if !w.Method.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownMethod, w.Method)
		}
		if miss := w.Payment.missing(w.Method, false); len(miss) > 0 {
			return fmt.Errorf("%w: %s", ErrPaymentIncomplete, strings.Join(miss, ", "))
		}
	default:
		return fmt.Errorf("%w: next from %s", ErrIllegalTransition, w.Step)
	}
	return w.moveTo(w.Step + 1)
}

func (w *Wizard) Previous() error {
	return w.moveTo(w.Step - 1)
}

// Reset starts a fresh checkout, keeping the last shipping details.
func (w *Wizard) Reset() {
	shipping := w.Shipping
	*w = NewWizard()
	if shipping != (ShippingInfo{}) {
		w.Shipping = shipping
	}
}

func (w *Wizard) complete(orderID string) error {
	if err := w.moveTo(StepSuccess); err != nil {
		return err
	}
	w.OrderID = orderID
	w.Payment = PaymentInfo{}
	return nil
}

// consistent reports whether every step behind the current one was
// completed, so a stored wizard cannot skip a guard.
func (w Wizard) consistent() bool {
	if w.Step < StepShipping || w.Step > StepSuccess {
		return false
	}
	if w.Step > StepShipping && len(w.Shipping.missing()) > 0 {
		return false
	}
	if w.Step == StepConfirmation && (!w.Method.Valid() || len(w.Payment.missing(w.Method, false)) > 0) {
		return false
	}
	if w.Step == StepSuccess && w.OrderID == "" {
		return false
	}
	return true
}

func (w *Wizard) moveTo(to Step) error {
	if !CanTransition(w.Step, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, w.Step, to)
	}
	w.Step = to
	return nil
}

func blank(fields map[string]string, order ...string) []string {
	var out []string
	for _, k := range order {
		if strings.TrimSpace(fields[k]) == "" {
			out = append(out, k)
		}
	}
	return out
}
