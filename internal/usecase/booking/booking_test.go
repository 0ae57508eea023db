package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointease/internal/audit"
	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/infra/kv"
	"github.com/BruksfildServices01/appointease/internal/infra/repository"
	"github.com/BruksfildServices01/appointease/internal/models"
)

// memRepo é um Repository em memória para os testes.
type memRepo struct {
	mu      sync.Mutex
	items   []models.Booking
	listErr error
	addErr  error
}

func (r *memRepo) List(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]models.Booking(nil), r.items...), nil
}

func (r *memRepo) Append(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	r.items = append(r.items, *b)
	return nil
}

func (r *memRepo) AppendIfSlotFree(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	if domain.TakenSlots(r.items, b.Date)[b.TimeSlot] {
		return domain.ErrSlotConflict
	}
	r.items = append(r.items, *b)
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed bool
	r.items, removed = domain.Remove(r.items, id)
	return removed, nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, c domain.Confirmation) error {
	return m.Called(ctx, c).Error(0)
}

func testSettings() Settings {
	seq := 0
	return Settings{
		Schedule:          domain.DefaultSchedule(),
		Location:          time.UTC,
		BookingWindowDays: 14,
		Now: func() time.Time {
			return time.Date(2025, 4, 9, 11, 0, 0, 0, time.UTC)
		},
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}
}

func validInput() SubmitBookingInput {
	return SubmitBookingInput{
		Name:     "Jane Doe",
		Email:    "jane@x.com",
		Phone:    "555",
		Date:     "2025-04-10",
		TimeSlot: "10:00",
	}
}

func TestSubmitBooking_Success(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, domain.Confirmation{
		BookingID: "id-1",
		Name:      "Jane Doe",
		Email:     "jane@x.com",
		Date:      "April 10, 2025",
		Time:      "10:00",
	}).Return(nil).Once()

	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	conf, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", conf.Name)
	assert.Equal(t, "April 10, 2025", conf.Date)
	assert.Equal(t, "10:00", conf.Time)
	assert.True(t, conf.NotificationSent)

	require.Len(t, repo.items, 1)
	got := repo.items[0]
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.Equal(t, "555", got.Phone)
	assert.Equal(t, "2025-04-10", got.Date)
	assert.Equal(t, "10:00", got.TimeSlot)
	assert.True(t, got.CreatedAt.Equal(time.Date(2025, 4, 9, 11, 0, 0, 0, time.UTC)))

	n.AssertExpectations(t)
}

func TestSubmitBooking_MissingSlotNeverPersists(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	in := validInput()
	in.TimeSlot = "  "

	conf, err := uc.Execute(context.Background(), in)
	assert.Nil(t, conf)
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotRequired))
	assert.Empty(t, repo.items)
	n.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
}

func TestSubmitBooking_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitBookingInput)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing name",
			mutate: func(in *SubmitBookingInput) { in.Name = "" },
			check: func(t *testing.T, err error) {
				ve, ok := domain.AsValidation(err)
				require.True(t, ok)
				assert.Contains(t, ve.Fields, "name")
			},
		},
		{
			name:   "bad email",
			mutate: func(in *SubmitBookingInput) { in.Email = "jane.x.com" },
			check: func(t *testing.T, err error) {
				ve, ok := domain.AsValidation(err)
				require.True(t, ok)
				assert.Equal(t, "Invalid email address", ve.Fields["email"])
			},
		},
		{
			name:   "phone too long",
			mutate: func(in *SubmitBookingInput) { in.Phone = strings.Repeat("5", domain.MaxPhoneLength+1) },
			check: func(t *testing.T, err error) {
				ve, ok := domain.AsValidation(err)
				require.True(t, ok)
				assert.Equal(t, "Phone number is too long", ve.Fields["phone"])
			},
		},
		{
			name:   "bad date",
			mutate: func(in *SubmitBookingInput) { in.Date = "10/04/2025" },
			check: func(t *testing.T, err error) {
				assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidDate))
			},
		},
		{
			name:   "slot off grid",
			mutate: func(in *SubmitBookingInput) { in.TimeSlot = "10:15" },
			check: func(t *testing.T, err error) {
				assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidSlot))
			},
		},
		{
			name:   "slot after hours",
			mutate: func(in *SubmitBookingInput) { in.TimeSlot = "17:00" },
			check: func(t *testing.T, err error) {
				assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidSlot))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			uc := NewSubmitBooking(repo, &mockNotifier{}, nil, testSettings(), zerolog.Nop())

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, repo.items)
		})
	}
}

func TestSubmitBooking_NormalizesSlot(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	in := validInput()
	in.TimeSlot = "09:30"

	conf, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "9:30", conf.Time)
	assert.Equal(t, "9:30", repo.items[0].TimeSlot)
}

func TestSubmitBooking_NotificationFailureKeepsBooking(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	conf, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, conf.NotificationSent)
	assert.Len(t, repo.items, 1)
}

func TestSubmitBooking_NotificationDisabled(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, mock.Anything).Return(domain.ErrNotificationDisabled)

	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	conf, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, conf.NotificationSent)
	assert.Len(t, repo.items, 1)
}

func TestSubmitBooking_AppendFailure(t *testing.T) {
	repo := &memRepo{addErr: errors.New("disk full")}
	n := &mockNotifier{}

	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	n.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
}

func TestSubmitBooking_DuplicateSlotAllowedByDefault(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitBooking(repo, n, nil, testSettings(), zerolog.Nop())

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Len(t, repo.items, 2)
	assert.NotEqual(t, repo.items[0].ID, repo.items[1].ID)
}

func TestSubmitBooking_PreventDoubleBooking(t *testing.T) {
	repo := &memRepo{}
	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil)

	settings := testSettings()
	settings.PreventDoubleBooking = true

	uc := NewSubmitBooking(repo, n, nil, settings, zerolog.Nop())

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotTaken))
	assert.Len(t, repo.items, 1)

	avail := NewGetAvailability(repo, settings)
	date, err := avail.ParseDate("2025-04-10")
	require.NoError(t, err)

	slots, err := avail.Execute(context.Background(), date)
	require.NoError(t, err)
	assert.Len(t, slots, 15)
	assert.NotContains(t, slots, "10:00")
}

func TestGetAvailability(t *testing.T) {
	uc := NewGetAvailability(&memRepo{}, testSettings())

	future, err := uc.ParseDate("2025-04-10")
	require.NoError(t, err)

	slots, err := uc.Execute(context.Background(), future)
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, "9:00", slots[0])
	assert.Equal(t, "16:30", slots[15])

	// now = 11:00 no mesmo dia
	today, err := uc.ParseDate("2025-04-09")
	require.NoError(t, err)

	slots, err = uc.Execute(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, "11:30", slots[0])
	assert.Len(t, slots, 11)

	dates := uc.Dates()
	require.Len(t, dates, 14)
	assert.Equal(t, "2025-04-10", dates[0].Format(domain.DateLayout))
	assert.Equal(t, "2025-04-10", uc.DefaultDate().Format(domain.DateLayout))
}

func TestGetAvailability_IgnoresStoreWhenGuardOff(t *testing.T) {
	uc := NewGetAvailability(&memRepo{listErr: errors.New("boom")}, testSettings())

	date, _ := uc.ParseDate("2025-04-10")
	slots, err := uc.Execute(context.Background(), date)
	require.NoError(t, err)
	assert.Len(t, slots, 16)
}

func TestListBookings(t *testing.T) {
	repo := &memRepo{items: []models.Booking{{ID: "a"}, {ID: "b"}}}
	uc := NewListBookings(repo, testSettings(), zerolog.Nop())

	list, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{list[0].ID, list[1].ID})

	empty := NewListBookings(&memRepo{}, testSettings(), zerolog.Nop())
	list, err = empty.Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListBookings_LoadFailureYieldsEmpty(t *testing.T) {
	repo := &memRepo{listErr: fmt.Errorf("%w: unexpected token", domain.ErrStoreCorrupt)}
	uc := NewListBookings(repo, testSettings(), zerolog.Nop())

	list, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreCorrupt)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDeleteBooking(t *testing.T) {
	repo := &memRepo{items: []models.Booking{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	uc := NewDeleteBooking(repo, nil)

	require.NoError(t, uc.Execute(context.Background(), "b"))
	assert.Len(t, repo.items, 2)

	require.NoError(t, uc.Execute(context.Background(), "missing"))
	assert.Len(t, repo.items, 2)

	require.NoError(t, uc.Execute(context.Background(), ""))
	assert.Equal(t, "a", repo.items[0].ID)
	assert.Equal(t, "c", repo.items[1].ID)
}

// slowStore atrasa as leituras para abrir a janela entre checagem e escrita.
type slowStore struct {
	*kv.MemoryStore
	delay time.Duration
}

func (s slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.Get(ctx, key)
}

func TestSubmitBooking_PreventDoubleBookingConcurrent(t *testing.T) {
	repo := repository.NewBookingKVRepository(slowStore{
		MemoryStore: kv.NewMemoryStore(),
		delay:       2 * time.Millisecond,
	})

	settings := testSettings()
	settings.PreventDoubleBooking = true
	settings.NewID = nil

	n := &mockNotifier{}
	n.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitBooking(repo, n, nil, settings, zerolog.Nop())

	const workers = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		taken   int
		unknown []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validInput())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, domain.CodeSlotTaken):
				taken++
			default:
				unknown = append(unknown, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unknown)
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, taken)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteBooking_CountsOnlyRealRemovals(t *testing.T) {
	var buf strings.Builder
	log := zerolog.New(&buf)
	d := audit.NewDispatcher(audit.New(log), log)

	repo := &memRepo{items: []models.Booking{{ID: "a"}}}
	uc := NewDeleteBooking(repo, d)

	require.NoError(t, uc.Execute(context.Background(), "missing"))
	require.NoError(t, uc.Execute(context.Background(), "a"))
	d.Close()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"action":"booking_deleted"`))
	assert.Contains(t, out, `"entity_id":"a"`)
	assert.NotContains(t, out, `"entity_id":"missing"`)
}

func TestListBookings_Location(t *testing.T) {
	uc := NewListBookings(&memRepo{}, testSettings(), zerolog.Nop())
	assert.Equal(t, time.UTC, uc.Location())

	uc = NewListBookings(&memRepo{}, Settings{}, zerolog.Nop())
	assert.Equal(t, time.Local, uc.Location())
}
