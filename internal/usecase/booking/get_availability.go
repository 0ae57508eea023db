package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
)

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
}

func NewGetAvailability(repo domain.Repository, settings Settings) *GetAvailability {
	return &GetAvailability{repo: repo, settings: settings}
}

// Execute devolve os horários livres da data, na ordem da grade.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date time.Time,
) ([]string, error) {

	var taken map[string]bool

	if uc.settings.PreventDoubleBooking {
		list, err := uc.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load bookings: %w", err)
		}
		taken = domain.TakenSlots(list, date.Format(domain.DateLayout))
	}

	return domain.AvailableSlots(
		date,
		uc.settings.now(),
		uc.settings.Schedule,
		taken,
	), nil
}

// Dates lists the dates the booking form offers, starting tomorrow.
func (uc *GetAvailability) Dates() []time.Time {
	return domain.DateOptions(uc.settings.now(), uc.settings.BookingWindowDays)
}

// DefaultDate is the preselected date of the form (tomorrow).
func (uc *GetAvailability) DefaultDate() time.Time {
	return domain.StartOfDay(uc.settings.now()).AddDate(0, 0, 1)
}

func (uc *GetAvailability) ParseDate(date string) (time.Time, error) {
	return uc.settings.ParseDate(date)
}
