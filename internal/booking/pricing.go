package booking

import (
	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/shopspring/decimal"
)

type AppointmentType string

const (
	TypePresencial AppointmentType = "presencial"
	TypeVirtual    AppointmentType = "virtual"
)

func (t AppointmentType) Valid() bool { return t == TypePresencial || t == TypeVirtual }

type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

const DefaultService = "consultation"

var (
	defaultBase     = decimal.NewFromInt(60)
	virtualDiscount = decimal.RequireFromString("0.9")

	urgencySurcharge = map[Urgency]decimal.Decimal{
		UrgencyNormal:    decimal.Zero,
		UrgencyUrgent:    decimal.NewFromInt(20),
		UrgencyEmergency: decimal.NewFromInt(50),
	}
)

// Quote prices a consultation: the service's catalog price (60 when the
// service is unknown), 10% off for virtual appointments, plus the urgency
// surcharge. Unknown urgencies add nothing.
func Quote(cat *catalog.Catalog, service string, t AppointmentType, u Urgency) float64 {
	base := defaultBase
	if it, err := cat.Get(service, catalog.TypeService); err == nil {
		base = decimal.NewFromFloat(it.Price)
	}
	if t == TypeVirtual {
		base = base.Mul(virtualDiscount)
	}
	return base.Add(urgencySurcharge[u]).InexactFloat64()
}
