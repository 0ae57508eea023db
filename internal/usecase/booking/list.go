package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type ListBookings struct {
	repo     domain.Repository
	settings Settings
	log      zerolog.Logger
}

func NewListBookings(repo domain.Repository, settings Settings, log zerolog.Logger) *ListBookings {
	return &ListBookings{repo: repo, settings: settings, log: log}
}

// Location é o fuso em que o dashboard exibe os horários.
func (uc *ListBookings) Location() *time.Location {
	return uc.settings.location()
}

// Execute devolve os agendamentos na ordem de inserção. Em falha de
// leitura devolve lista vazia e o erro.
func (uc *ListBookings) Execute(ctx context.Context) ([]models.Booking, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("error fetching appointments")
		return []models.Booking{}, fmt.Errorf("list bookings: %w", err)
	}

	if list == nil {
		list = []models.Booking{}
	}
	return list, nil
}
