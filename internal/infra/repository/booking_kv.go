package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/infra/kv"
	"github.com/BruksfildServices01/appointease/internal/models"
)

// BookingsKey é a chave única que guarda o array JSON de agendamentos.
const BookingsKey = "appointments"

// BookingKVRepository guarda a lista inteira sob uma única chave.
// Append e Delete fazem read-modify-write; o mutex serializa só este processo.
type BookingKVRepository struct {
	store kv.Store
	key   string
	mu    sync.Mutex
}

func NewBookingKVRepository(store kv.Store) *BookingKVRepository {
	return &BookingKVRepository{store: store, key: BookingsKey}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingKVRepository) List(ctx context.Context) ([]models.Booking, error) {
	return r.load(ctx)
}

func (r *BookingKVRepository) load(ctx context.Context) ([]models.Booking, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.Booking{}, nil
	}

	var list []models.Booking
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	if list == nil {
		list = []models.Booking{}
	}
	return list, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *BookingKVRepository) Append(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	return r.save(ctx, append(list, *b))
}

func (r *BookingKVRepository) AppendIfSlotFree(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	if domain.TakenSlots(list, b.Date)[b.TimeSlot] {
		return domain.ErrSlotConflict
	}

	return r.save(ctx, append(list, *b))
}

func (r *BookingKVRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	list, removed := domain.Remove(list, id)
	if !removed {
		return false, nil
	}
	if err := r.save(ctx, list); err != nil {
		return false, err
	}
	return true, nil
}

func (r *BookingKVRepository) save(ctx context.Context, list []models.Booking) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	return r.store.Set(ctx, r.key, raw)
}

var _ domain.Repository = (*BookingKVRepository)(nil)
