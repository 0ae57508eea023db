package booking

import (
	"time"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
)

// Settings agrupa as regras de agenda compartilhadas pelos use cases.
type Settings struct {
	Schedule          domain.Schedule
	Location          *time.Location
	BookingWindowDays int

	// PreventDoubleBooking esconde e rejeita horários já agendados na data.
	PreventDoubleBooking bool

	Now   func() time.Time
	NewID func() string
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s Settings) now() time.Time {
	if s.Now == nil {
		return time.Now().In(s.location())
	}
	return s.Now().In(s.location())
}

// ParseDate interpreta yyyy-MM-dd no fuso da agenda.
func (s Settings) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, date, s.location())
}
