package checkout

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

// PaymentVerificationRequired is shown when checkout is attempted without
// a payment screenshot.
const PaymentVerificationRequired = "Payment Verification Required"

var (
	ErrPaymentVerificationRequired = errors.New("payment verification required")
	ErrUnknownStep                 = errors.New("unknown checkout step")
)

type Step int

const (
	StepContact Step = iota + 1
	StepPickup
	StepReview
	StepPayment
)

var stepNames = map[Step]string{
	StepContact: "contact",
	StepPickup:  "pickup",
	StepReview:  "review",
	StepPayment: "payment",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// ParseStep accepts a step name or its 1-based number.
func ParseStep(v string) (Step, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for s, name := range stepNames {
		if name == v || strconv.Itoa(int(s)) == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, v)
}

// Screenshot is the uploaded payment proof.
type Screenshot struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Form is everything the checkout collects across its four steps.
type Form struct {
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Date          string             `json:"date"`
	Time          string             `json:"time"`
	Items         []models.OrderLine `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	Screenshot    *Screenshot        `json:"-"`
}

type contactStep struct {
	Name  string `json:"name" validate:"notblank,max=100" label:"Name"`
	Email string `json:"email" validate:"notblank,emailaddr" label:"Email"`
	Phone string `json:"phone" validate:"notblank,phone" label:"Phone"`
}

type pickupStep struct {
	Date string `json:"date" validate:"notblank,datefmt" label:"Pickup date"`
	Time string `json:"time" validate:"notblank,timefmt" label:"Pickup time"`
}

type reviewStep struct {
	Items         []models.OrderLine `json:"items" validate:"dive"`
	PaymentMethod string             `json:"payment_method" validate:"omitempty,oneof=bank_transfer mobile_wallet card" label:"Payment method"`
}

// StepError reports which step failed; Err is FieldErrors or a sentinel.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return e.Step.String() + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// ValidateStep checks only the fields collected by step.
func ValidateStep(f *Form, step Step, now time.Time) error {
	errs := validation.FieldErrors{}
	collect := func(err error) error {
		if err == nil {
			return nil
		}
		if fe, ok := validation.AsFieldErrors(err); ok {
			errs.Merge(fe)
			return nil
		}
		return err
	}

	switch step {
	case StepContact:
		if err := collect(validation.Struct(&contactStep{Name: f.Name, Email: f.Email, Phone: f.Phone})); err != nil {
			return err
		}

	case StepPickup:
		if err := collect(validation.Struct(&pickupStep{Date: f.Date, Time: f.Time})); err != nil {
			return err
		}
		if day, err := time.ParseInLocation(validation.DateLayout, f.Date, now.Location()); err == nil {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if day.Before(today) {
				errs.Add("date", "Pickup date cannot be in the past")
			}
		}

	case StepReview:
		if len(f.Items) == 0 {
			errs.Add("items", "Your cart is empty")
		}
		if err := collect(validation.Struct(&reviewStep{Items: f.Items, PaymentMethod: f.PaymentMethod})); err != nil {
			return err
		}

	case StepPayment:
		if f.Screenshot == nil {
			return ErrPaymentVerificationRequired
		}
		if !strings.HasPrefix(f.Screenshot.ContentType, "image/") {
			errs.Add("payment_screenshot", "Please upload an image of your payment confirmation")
		}

	default:
		return fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateThrough checks every step up to and including last, stopping at
// the first step that fails.
func ValidateThrough(f *Form, last Step, now time.Time) error {
	for s := StepContact; s <= last; s++ {
		if err := ValidateStep(f, s, now); err != nil {
			return &StepError{Step: s, Err: err}
		}
	}
	return nil
}

// Wizard walks the steps in order. Next only advances once the current
// step validates; Back is always allowed.
type Wizard struct {
	form *Form
	step Step
	now  func() time.Time
}

func NewWizard(form *Form, now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	return &Wizard{form: form, step: StepContact, now: now}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Next() error {
	if err := ValidateStep(w.form, w.step, w.now()); err != nil {
		return &StepError{Step: w.step, Err: err}
	}
	if w.step < StepPayment {
		w.step++
	}
	return nil
}

func (w *Wizard) Back() {
	if w.step > StepContact {
		w.step--
	}
}
