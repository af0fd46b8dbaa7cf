package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/catalog"
	"github.com/ariefcatur/lawfirm-shop/internal/events"
	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"go.uber.org/zap"
)

type Service struct {
	Catalog   *catalog.Catalog
	Submitter Submitter
	Events    events.Publisher
	Occupied  []string
	Location  *time.Location
	Now       func() time.Time
	Producer  string
	Log       *zap.Logger
}

func (s *Service) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if s.Location != nil {
		return now().In(s.Location)
	}
	return now()
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Today is the current time in the firm's location.
func (s *Service) Today() time.Time { return s.now() }

func (s *Service) Calendar(year int, month time.Month) []Day {
	return MonthGrid(year, month, s.now())
}

// Slots lists the bookable times of date. Dates that are not available on the
// calendar have none.
func (s *Service) Slots(date string) ([]string, error) {
	if _, err := s.day(date); err != nil {
		return nil, err
	}
	return AvailableSlots(s.Occupied), nil
}

func (s *Service) Quote(service string, t AppointmentType, u Urgency) (float64, error) {
	service, t, u = normalize(service, t, u)
	if !t.Valid() {
		return 0, ErrInvalidType
	}
	return Quote(s.Catalog, service, t, u), nil
}

// Book validates req, waits for the submitter and appends the booking to the
// session's list. Nothing is written when validation or submission fails.
func (s *Service) Book(ctx context.Context, b storage.Bucket, req Request) (Booking, error) {
	if err := validate(req); err != nil {
		return Booking{}, err
	}
	service, typ, urgency := normalize(req.Service, req.Type, req.Client.Urgency)
	if !typ.Valid() {
		return Booking{}, ErrInvalidType
	}

	day, err := s.day(req.Date)
	if err != nil {
		return Booking{}, err
	}
	sel := Selection{Year: day.Date.Year(), Month: day.Date.Month()}
	if !sel.SelectDate(day) {
		return Booking{}, ErrDateUnavailable
	}
	if !sel.SelectTime(req.Time, AvailableSlots(s.Occupied)) {
		return Booking{}, fmt.Errorf("%w: %s", ErrSlotUnavailable, req.Time)
	}

	now := s.now()
	client := req.Client
	client.Urgency = urgency
	bk := Booking{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Date:      sel.Date,
		Time:      sel.Time,
		Type:      typ,
		Service:   service,
		Client:    client,
		Urgency:   urgency,
		Price:     Quote(s.Catalog, service, typ, urgency),
		Status:    StatusConfirmed,
		CreatedAt: now.UTC(),
	}

	if err := s.Submitter.Submit(ctx, bk); err != nil {
		return Booking{}, fmt.Errorf("submit booking: %w", err)
	}

	list, err := s.List(ctx, b)
	if err != nil {
		return Booking{}, err
	}
	if err := storage.SaveJSON(ctx, b, storage.KeyBookings, append(list, bk)); err != nil {
		return Booking{}, err
	}

	s.publish(ctx, b.Session(), bk)
	return bk, nil
}

func (s *Service) List(ctx context.Context, b storage.Bucket) ([]Booking, error) {
	var list []Booking
	if _, err := storage.LoadJSON(ctx, b, storage.KeyBookings, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Booking{}
	}
	return list, nil
}

func (s *Service) day(date string) (Day, error) {
	now := s.now()
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrDateUnavailable, date)
	}
	for _, c := range MonthGrid(d.Year(), d.Month(), now) {
		if c.CurrentMonth && c.ISO == date {
			if !c.Available {
				return Day{}, fmt.Errorf("%w: %s", ErrDateUnavailable, date)
			}
			return c, nil
		}
	}
	return Day{}, fmt.Errorf("%w: %s", ErrDateUnavailable, date)
}

func (s *Service) publish(ctx context.Context, session string, bk Booking) {
	if s.Events == nil {
		return
	}
	env, err := events.New(s.Producer, events.EventBookingConfirmed, session, bk.ID, events.BookingConfirmedPayload{
		BookingID: bk.ID,
		Date:      bk.Date,
		Time:      bk.Time,
		Type:      string(bk.Type),
		Service:   bk.Service,
		Price:     bk.Price,
	})
	if err == nil {
		err = s.Events.Publish(ctx, env)
	}
	if err != nil {
		s.logger().Warn("publish booking event", zap.String("booking_id", bk.ID), zap.Error(err))
	}
}

func validate(req Request) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Client.Name},
		{"email", req.Client.Email},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

func normalize(service string, t AppointmentType, u Urgency) (string, AppointmentType, Urgency) {
	if service == "" {
		service = DefaultService
	}
	if t == "" {
		t = TypePresencial
	}
	if u == "" {
		u = UrgencyNormal
	}
	return service, t, u
}
