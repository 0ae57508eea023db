package booking

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "January 02, 2006"
	ShortDateLayout   = "Jan 02, 2006"
	OptionDateLayout  = "Monday, January 02, 2006"

	DefaultBookingWindowDays = 14

	// limites em caracteres, iguais às colunas de models.Booking
	MaxNameLength  = 100
	MaxEmailLength = 100
	MaxPhoneLength = 20
)

// ErrStoreCorrupt is returned when the persisted list cannot be decoded.
var ErrStoreCorrupt = errors.New("booking store corrupt")

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// ===============================
// Validation
// ===============================

// ValidationError carries one user-facing message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateContact checks the contact fields the same way the form does.
func ValidateContact(name, email, phone string) error {
	fields := map[string]string{}
	name, email, phone = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(phone)

	switch {
	case name == "":
		fields["name"] = "Name is required"
	case utf8.RuneCountInString(name) > MaxNameLength:
		fields["name"] = "Name is too long"
	}

	switch {
	case email == "":
		fields["email"] = "Email is required"
	case utf8.RuneCountInString(email) > MaxEmailLength:
		fields["email"] = "Email is too long"
	case !IsValidEmail(email):
		fields["email"] = "Invalid email address"
	}

	switch {
	case phone == "":
		fields["phone"] = "Phone number is required"
	case utf8.RuneCountInString(phone) > MaxPhoneLength:
		fields["phone"] = "Phone number is too long"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// NewBooking monta o registro a ser persistido. O slot já deve estar
// normalizado e a data no layout yyyy-MM-dd.
func NewBooking(
	id string,
	name, email, phone, message string,
	date time.Time,
	slot string,
	now time.Time,
) *models.Booking {
	return &models.Booking{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Message:   strings.TrimSpace(message),
		Date:      date.Format(DateLayout),
		TimeSlot:  slot,
		CreatedAt: now.UTC(),
	}
}

// Remove devolve a lista sem o id informado e se algo foi removido.
func Remove(list []models.Booking, id string) ([]models.Booking, bool) {
	out := make([]models.Booking, 0, len(list))
	removed := false
	for _, b := range list {
		if b.ID == id {
			removed = true
			continue
		}
		out = append(out, b)
	}
	return out, removed
}

// TakenSlots collects the slots already booked on date.
func TakenSlots(list []models.Booking, date string) map[string]bool {
	taken := map[string]bool{}
	for _, b := range list {
		if b.Date == date {
			taken[b.TimeSlot] = true
		}
	}
	return taken
}

// ===============================
// Formatting
// ===============================

func DisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// DisplayDateString formats a stored yyyy-MM-dd value; unparsable
// values are returned unchanged.
func DisplayDateString(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return DisplayDate(t)
}

// Códigos de negócio usados pelo fluxo de agendamento.
const (
	CodeSlotRequired = "slot_required"
	CodeInvalidDate  = "invalid_date"
	CodeInvalidSlot  = "invalid_slot"
	CodeSlotTaken    = "slot_taken"
)

func ErrSlotRequired() error {
	return httperr.ErrBusiness(CodeSlotRequired)
}

func ErrInvalidDate() error {
	return httperr.ErrBusiness(CodeInvalidDate)
}

func ErrInvalidSlot() error {
	return httperr.ErrBusiness(CodeInvalidSlot)
}

func ErrSlotTaken() error {
	return httperr.ErrBusiness(CodeSlotTaken)
}
