package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
)

func TestValidateContact(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateContact("Jane Doe", "jane@x.com", "555"))
	})

	t.Run("all missing", func(t *testing.T) {
		err := ValidateContact("", " ", "")
		ve, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, map[string]string{
			"name":  "Name is required",
			"email": "Email is required",
			"phone": "Phone number is required",
		}, ve.Fields)
		assert.Equal(t, "invalid fields: email, name, phone", err.Error())
	})

	t.Run("bad email", func(t *testing.T) {
		ve, ok := AsValidation(ValidateContact("Jane", "jane@x", "555"))
		require.True(t, ok)
		assert.Equal(t, "Invalid email address", ve.Fields["email"])
	})
}

func TestValidateContact_Lengths(t *testing.T) {
	longName := strings.Repeat("a", MaxNameLength)
	longEmail := strings.Repeat("a", MaxEmailLength-len("@x.com")) + "@x.com"
	longPhone := strings.Repeat("5", MaxPhoneLength)

	// no limite passa, espaços nas pontas não contam
	assert.NoError(t, ValidateContact("  "+longName+"  ", longEmail, " "+longPhone+" "))

	// acentos contam como um caractere
	assert.NoError(t, ValidateContact(strings.Repeat("é", MaxNameLength), "jane@x.com", "555"))

	ve, ok := AsValidation(ValidateContact(longName+"a", "a"+longEmail, longPhone+"5"))
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"name":  "Name is too long",
		"email": "Email is too long",
		"phone": "Phone number is too long",
	}, ve.Fields)
}

func TestIsValidEmail(t *testing.T) {
	good := []string{"jane@x.com", "JOHN.DOE+tag@Example.ORG", "a_b%c@sub.domain.io"}
	bad := []string{"", "jane", "jane@", "@x.com", "jane@x.c", "jane doe@x.com"}

	for _, e := range good {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range bad {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestNewBooking(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	b := NewBooking("id-1", " Jane Doe ", "jane@x.com", "555", "", date, "10:00", now)

	assert.Equal(t, "id-1", b.ID)
	assert.Equal(t, "Jane Doe", b.Name)
	assert.Equal(t, "2025-04-10", b.Date)
	assert.Equal(t, "10:00", b.TimeSlot)
	assert.True(t, b.CreatedAt.Equal(now))
	assert.Equal(t, time.UTC, b.CreatedAt.Location())
}

func TestRemove(t *testing.T) {
	list := []models.Booking{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out, removed := Remove(list, "b")
	assert.True(t, removed)
	assert.Equal(t, []models.Booking{{ID: "a"}, {ID: "c"}}, out)

	out, removed = Remove(list, "zzz")
	assert.False(t, removed)
	assert.Equal(t, list, out)
}

func TestTakenSlots(t *testing.T) {
	list := []models.Booking{
		{Date: "2025-04-10", TimeSlot: "9:00"},
		{Date: "2025-04-10", TimeSlot: "10:30"},
		{Date: "2025-04-11", TimeSlot: "11:00"},
	}

	assert.Equal(t, map[string]bool{"9:00": true, "10:30": true}, TakenSlots(list, "2025-04-10"))
	assert.Empty(t, TakenSlots(list, "2025-04-12"))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "April 10, 2025", DisplayDate(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "April 03, 2025", DisplayDateString("2025-04-03"))
	assert.Equal(t, "not-a-date", DisplayDateString("not-a-date"))
}

func TestBusinessErrors(t *testing.T) {
	assert.True(t, httperr.IsBusiness(ErrSlotRequired(), CodeSlotRequired))
	assert.True(t, httperr.IsBusiness(ErrSlotTaken(), CodeSlotTaken))
	assert.False(t, httperr.IsBusiness(ErrInvalidDate(), CodeInvalidSlot))
}
