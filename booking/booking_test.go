package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var today = time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC)

func validReservation() models.Reservation {
	return models.Reservation{
		Date:   "2030-03-12",
		Time:   "19:30",
		Guests: 4,
		Name:   "Grace Hopper",
		Email:  "grace@example.com",
		Phone:  "+1 555 123 4567",
	}
}

func TestValidateStepOnlyChecksItsFields(t *testing.T) {
	r := validReservation()
	r.Name = ""

	assert.NoError(t, ValidateStep(&r, StepWhen, today))
	assert.NoError(t, ValidateStep(&r, StepDetails, today))

	fe, ok := validation.AsFieldErrors(ValidateStep(&r, StepGuest, today))
	require.True(t, ok)
	assert.Equal(t, "Name is required", fe["name"])
	assert.Len(t, fe, 1)
}

func TestValidateStepWhen(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(r *models.Reservation)
		field string
		msg   string
	}{
		{"past date", func(r *models.Reservation) { r.Date = "2030-03-09" }, "date", "Date cannot be in the past"},
		{"bad date", func(r *models.Reservation) { r.Date = "12/03/2030" }, "date", "Date must be a valid date (YYYY-MM-DD)"},
		{"no time", func(r *models.Reservation) { r.Time = "" }, "time", "Time is required"},
		{"no guests", func(r *models.Reservation) { r.Guests = 0 }, "guests", "Number of guests must be at least 1"},
		{"too many guests", func(r *models.Reservation) { r.Guests = 21 }, "guests", "Number of guests must be at most 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReservation()
			tt.edit(&r)
			fe, ok := validation.AsFieldErrors(ValidateStep(&r, StepWhen, today))
			require.True(t, ok)
			assert.Equal(t, tt.msg, fe[tt.field])
		})
	}

	r := validReservation()
	r.Date = "2030-03-10"
	assert.NoError(t, ValidateStep(&r, StepWhen, today), "today is bookable")
}

func TestValidateStepDetails(t *testing.T) {
	r := validReservation()
	r.SeatingPreference = "roof"
	fe, ok := validation.AsFieldErrors(ValidateStep(&r, StepDetails, today))
	require.True(t, ok)
	assert.Contains(t, fe["seating_preference"], "Seating preference must be one of")
}

func TestValidateThroughMergesSteps(t *testing.T) {
	r := validReservation()
	r.Guests = 0
	r.Email = "not-an-email"

	fe, ok := validation.AsFieldErrors(ValidateThrough(&r, StepGuest, today))
	require.True(t, ok)
	assert.Contains(t, fe, "guests")
	assert.Equal(t, "Please enter a valid email address", fe["email"])

	fe, ok = validation.AsFieldErrors(ValidateThrough(&r, StepWhen, today))
	require.True(t, ok)
	assert.NotContains(t, fe, "email")
}

func TestParseStep(t *testing.T) {
	step, err := ParseStep("2")
	require.NoError(t, err)
	assert.Equal(t, StepDetails, step)

	for _, bad := range []string{"0", "4", "guest", ""} {
		_, err := ParseStep(bad)
		assert.ErrorIs(t, err, ErrUnknownStep, bad)
	}
}

func TestBook(t *testing.T) {
	store := repository.NewMemoryStore[models.Reservation]("reservation_id")
	svc := NewService(store, logger.Nop())
	svc.now = func() time.Time { return today }

	r, err := svc.Book(context.Background(), validReservation())
	require.NoError(t, err)
	assert.NotEmpty(t, r.Reservation_id)
	assert.Equal(t, models.ReservationPending, r.Status)
	assert.Equal(t, "no-preference", r.SeatingPreference)

	stored, err := store.Get(context.Background(), r.Reservation_id)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", stored.Name)

	bad := validReservation()
	bad.Phone = "abc"
	_, err = svc.Book(context.Background(), bad)
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid phone number", fe["phone"])

	n, _ := store.Count(context.Background(), nil)
	assert.EqualValues(t, 1, n)
}
