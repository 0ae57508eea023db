package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/appointease/internal/audit"
	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/metrics"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove o agendamento; id inexistente é no-op.
func (uc *DeleteBooking) Execute(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete booking %s: %w", id, err)
	}
	if !removed {
		return nil
	}

	metrics.IncBookingDeleted()
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionBookingDeleted,
			Entity:   "booking",
			EntityID: id,
		})
	}

	return nil
}
