package checkout

import (
	"strings"
	"time"
	"unicode"

	"github.com/ariefcatur/lawfirm-shop/internal/cart"
)

const OrderStatusConfirmed = "confirmed"

type Order struct {
	ID            string        `json:"id"`
	Items         []cart.Item   `json:"items"`
	Total         float64       `json:"total"`
	ShippingInfo  ShippingInfo  `json:"shippingInfo"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentInfo   PaymentInfo   `json:"paymentInfo"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// MaskCard keeps only the last four digits of a card number.
func MaskCard(number string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "****-****-****-" + digits
}

// Masked is the form of the payment details that may be stored with an
// order: card numbers reduced to their last four digits, no CVV.
func (p PaymentInfo) Masked(m PaymentMethod) PaymentInfo {
	if m == MethodCard {
		p.CardNumber = MaskCard(p.CardNumber)
	}
	p.CVV = ""
	return p
}
