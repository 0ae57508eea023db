package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// Repository é o armazenamento da lista de agendamentos.
// List devolve na ordem de inserção; Delete de id inexistente não é erro
// e devolve false.
type Repository interface {
	List(ctx context.Context) ([]models.Booking, error)

	Append(
		ctx context.Context,
		b *models.Booking,
	) error

	// AppendIfSlotFree grava b só se nenhum agendamento ocupa a mesma
	// data + horário. Checagem e escrita são atômicas; horário ocupado
	// devolve ErrSlotConflict.
	AppendIfSlotFree(
		ctx context.Context,
		b *models.Booking,
	) error

	Delete(
		ctx context.Context,
		id string,
	) (bool, error)
}

// ErrSlotConflict is returned by AppendIfSlotFree when the slot is taken.
var ErrSlotConflict = errors.New("slot already booked")

// Confirmation is what the confirmation view shows after a submit.
type Confirmation struct {
	BookingID        string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	NotificationSent bool   `json:"notification_sent"`
}

// ErrNotificationDisabled is returned by notifiers that are switched off.
var ErrNotificationDisabled = errors.New("notification disabled")

// Notifier entrega a confirmação ao cliente (best effort).
type Notifier interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}
