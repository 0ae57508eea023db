package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/audit"
	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/metrics"
	"github.com/BruksfildServices01/appointease/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitBookingInput struct {
	Name    string
	Email   string
	Phone   string
	Message string

	Date     string // yyyy-MM-dd
	TimeSlot string // H:MM
}

// ======================================================
// USE CASE
// ======================================================

type SubmitBooking struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
	settings Settings
	log      zerolog.Logger
}

func NewSubmitBooking(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	settings Settings,
	log zerolog.Logger,
) *SubmitBooking {
	return &SubmitBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		settings: settings,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	in SubmitBookingInput,
) (*domain.Confirmation, error) {

	// --------------------------------------------------
	// 1️⃣ Campos do formulário
	// --------------------------------------------------
	if err := domain.ValidateContact(in.Name, in.Email, in.Phone); err != nil {
		metrics.IncBookingRejected("invalid_fields")
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Horário obrigatório
	// --------------------------------------------------
	if strings.TrimSpace(in.TimeSlot) == "" {
		metrics.IncBookingRejected(domain.CodeSlotRequired)
		return nil, domain.ErrSlotRequired()
	}

	// --------------------------------------------------
	// 3️⃣ Data / horário na grade
	// --------------------------------------------------
	date, err := uc.settings.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		metrics.IncBookingRejected(domain.CodeInvalidDate)
		return nil, domain.ErrInvalidDate()
	}

	slot, err := domain.NormalizeSlot(in.TimeSlot)
	if err != nil || !uc.settings.Schedule.OnGrid(slot) {
		metrics.IncBookingRejected(domain.CodeInvalidSlot)
		return nil, domain.ErrInvalidSlot()
	}

	// --------------------------------------------------
	// 4️⃣ Persistência (com a trava de horário, checagem + escrita atômicas)
	// --------------------------------------------------
	b := domain.NewBooking(
		uc.newID(),
		in.Name,
		in.Email,
		in.Phone,
		in.Message,
		date,
		slot,
		uc.settings.now(),
	)

	if err := uc.persist(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			metrics.IncBookingRejected(domain.CodeSlotTaken)
			return nil, domain.ErrSlotTaken()
		}
		return nil, fmt.Errorf("append booking: %w", err)
	}

	metrics.IncBookingCreated()
	uc.dispatch(audit.Event{
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{
			"date":      b.Date,
			"time_slot": b.TimeSlot,
		},
	})

	// --------------------------------------------------
	// 5️⃣ Notificação (best effort, sem rollback)
	// --------------------------------------------------
	conf := &domain.Confirmation{
		BookingID: b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Date:      domain.DisplayDate(date),
		Time:      b.TimeSlot,
	}

	err = uc.notifier.SendConfirmation(ctx, *conf)
	switch {
	case err == nil:
		conf.NotificationSent = true
		metrics.IncNotification("sent")

	case errors.Is(err, domain.ErrNotificationDisabled):
		metrics.IncNotification("disabled")

	default:
		metrics.IncNotification("failed")
		uc.log.Warn().
			Err(err).
			Str("booking_id", b.ID).
			Msg("confirmation notification failed")

		uc.dispatch(audit.Event{
			Action:   audit.ActionBookingNotificationFailed,
			Entity:   "booking",
			EntityID: b.ID,
			Metadata: map[string]any{"error": err.Error()},
		})
	}

	return conf, nil
}

func (uc *SubmitBooking) persist(ctx context.Context, b *models.Booking) error {
	if uc.settings.PreventDoubleBooking {
		return uc.repo.AppendIfSlotFree(ctx, b)
	}
	return uc.repo.Append(ctx, b)
}

func (uc *SubmitBooking) newID() string {
	if uc.settings.NewID != nil {
		return uc.settings.NewID()
	}
	return uuid.NewString()
}

func (uc *SubmitBooking) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}
