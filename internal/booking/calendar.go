// Package booking generates the consultation calendar and records bookings.
package booking

import "time"

// GridCells keeps every month at six full weeks.
const GridCells = 42

const DateLayout = "2006-01-02"

type Day struct {
	Date         time.Time `json:"-"`
	ISO          string    `json:"date"`
	Weekday      int       `json:"weekday"`
	CurrentMonth bool      `json:"currentMonth"`
	Available    bool      `json:"available"`
}

// MonthGrid lays out the month starting on Sunday: filler days from the
// previous month, every day of the month, then next-month filler up to
// GridCells. A day of the month is available when it is not before today's
// date and not a Sunday. Filler days are never available.
func MonthGrid(year int, month time.Month, today time.Time) []Day {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	// compared by calendar day, so today itself stays bookable
	todayDate := startOfDay(today)

	days := make([]Day, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		current := d.Month() == first.Month() && d.Year() == first.Year()
		days = append(days, Day{
			Date:         d,
			ISO:          d.Format(DateLayout),
			Weekday:      int(d.Weekday()),
			CurrentMonth: current,
			Available:    current && !d.Before(todayDate) && d.Weekday() != time.Sunday,
		})
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Selection is the calendar state of one booking form.
type Selection struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Date  string     `json:"date,omitempty"`
	Time  string     `json:"time,omitempty"`
}

func NewSelection(today time.Time) Selection {
	return Selection{Year: today.Year(), Month: today.Month()}
}

// SelectDate accepts only available days and clears any chosen time.
func (s *Selection) SelectDate(d Day) bool {
	if !d.Available {
		return false
	}
	s.Date = d.ISO
	s.Time = ""
	return true
}

// SelectTime accepts a slot from offered once a date is chosen.
func (s *Selection) SelectTime(slot string, offered []string) bool {
	if s.Date == "" {
		return false
	}
	for _, o := range offered {
		if o == slot {
			s.Time = slot
			return true
		}
	}
	return false
}

func (s *Selection) NextMonth() { s.shift(1) }

func (s *Selection) PrevMonth() { s.shift(-1) }

func (s *Selection) shift(n int) {
	t := time.Date(s.Year, s.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	s.Year, s.Month = t.Year(), t.Month()
}
