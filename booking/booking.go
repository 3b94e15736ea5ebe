package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var ErrUnknownStep = errors.New("unknown reservation step")

const (
	StepWhen    = 1
	StepDetails = 2
	StepGuest   = 3
	LastStep    = StepGuest
)

// stepFields lists the Reservation fields each wizard step collects.
var stepFields = map[int][]string{
	StepWhen:    {"Date", "Time", "Guests"},
	StepDetails: {"SeatingPreference", "Occasion", "SpecialRequests"},
	StepGuest:   {"Name", "Email", "Phone"},
}

func ParseStep(v string) (int, error) {
	step, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || step < StepWhen || step > LastStep {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStep, v)
	}
	return step, nil
}

// ValidateStep checks the fields of one step only.
func ValidateStep(r *models.Reservation, step int, now time.Time) error {
	fields, ok := stepFields[step]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}

	errs := validation.FieldErrors{}
	if err := validation.Partial(r, fields...); err != nil {
		fe, ok := validation.AsFieldErrors(err)
		if !ok {
			return err
		}
		errs.Merge(fe)
	}

	if step == StepWhen {
		if day, err := time.ParseInLocation(validation.DateLayout, r.Date, now.Location()); err == nil {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if day.Before(today) {
				errs.Add("date", "Date cannot be in the past")
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateThrough validates steps 1..last and merges their errors, so the
// client can show every problem up to the step the guest is on.
func ValidateThrough(r *models.Reservation, last int, now time.Time) error {
	if last < StepWhen || last > LastStep {
		return fmt.Errorf("%w: %d", ErrUnknownStep, last)
	}
	errs := validation.FieldErrors{}
	for step := StepWhen; step <= last; step++ {
		err := ValidateStep(r, step, now)
		if err == nil {
			continue
		}
		fe, ok := validation.AsFieldErrors(err)
		if !ok {
			return err
		}
		errs.Merge(fe)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Store interface {
	Insert(ctx context.Context, doc repository.Document) error
}

type Service struct {
	reservations Store
	log          *logger.Logger
	now          func() time.Time
}

func NewService(reservations Store, log *logger.Logger) *Service {
	return &Service{reservations: reservations, log: log, now: time.Now}
}

// Book validates all three steps and stores the reservation as pending.
func (s *Service) Book(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	if err := ValidateThrough(&r, LastStep, s.now()); err != nil {
		return models.Reservation{}, err
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.SeatingPreference == "" {
		r.SeatingPreference = "no-preference"
	}
	r.Status = models.ReservationPending

	if err := s.reservations.Insert(ctx, &r); err != nil {
		s.log.Action("book_reservation").Error("Failed to save reservation", err)
		return models.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}

	s.log.Action("book_reservation").Info("Reservation requested",
		"reservation_id", r.Reservation_id, "date", r.Date, "guests", r.Guests)
	return r, nil
}
