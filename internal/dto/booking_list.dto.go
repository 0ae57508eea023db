package dto

import (
	"time"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/models"
)

const NoMessage = "No additional message"

type BookingListDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	CreatedAt time.Time `json:"created_at"`

	// campos de exibição do dashboard
	DisplayDate    string `json:"display_date"`
	DisplayMessage string `json:"display_message"`
	BookedOn       string `json:"booked_on"`
}

// FromBooking monta a linha do dashboard; loc é o fuso de exibição do
// "Booked on" (CreatedAt é gravado em UTC).
func FromBooking(b models.Booking, loc *time.Location) BookingListDTO {
	if loc == nil {
		loc = time.Local
	}

	msg := b.Message
	if msg == "" {
		msg = NoMessage
	}

	return BookingListDTO{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Message:   b.Message,
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		CreatedAt: b.CreatedAt,

		DisplayDate:    domain.DisplayDateString(b.Date),
		DisplayMessage: msg,
		BookedOn:       "Booked on " + b.CreatedAt.In(loc).Format(domain.ShortDateLayout),
	}
}

func FromBookings(list []models.Booking, loc *time.Location) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(list))
	for _, b := range list {
		out = append(out, FromBooking(b, loc))
	}
	return out
}
