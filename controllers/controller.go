package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/booking"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/checkout"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/notify"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/storage"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

const (
	requestTimeout = 10 * time.Second
	maxJSONBytes   = 1 << 20
)

// Controller holds everything the HTTP handlers depend on. Fields left
// zero by New's caller keep the defaults New sets.
type Controller struct {
	Stores    *repository.Stores
	Checkout  *checkout.Service
	Booking   *booking.Service
	Tokens    *helper.TokenIssuer
	Federated *helper.FederatedVerifier
	// AdminEmails may sign in through the identity provider without an
	// existing account; one is created on first sign-in.
	AdminEmails    []string
	Notifier       notify.Notifier
	Log            *logger.Logger
	Now            func() time.Time
	MaxUploadBytes int64
	// Closing ends every open stream once done. http.Server.Shutdown does
	// not cancel in-flight requests on its own.
	Closing context.Context
}

func New(stores *repository.Stores, tokens *helper.TokenIssuer, log *logger.Logger) *Controller {
	return &Controller{
		Stores:         stores,
		Checkout:       checkout.NewService(stores.Orders, storage.Disabled{}, log),
		Booking:        booking.NewService(stores.Reservations, log),
		Tokens:         tokens,
		Notifier:       notify.Nop{},
		Log:            log,
		Now:            time.Now,
		MaxUploadBytes: storage.DefaultMaxBytes,
	}
}

var errBadBody = errors.New("invalid request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is empty", errBadBody)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// storeFailure answers a failed repository call: 404 for a missing
// document, 500 (logged) for anything else.
func storeFailure(w http.ResponseWriter, mylog *logger.Logger, err error, notFound, failed string) {
	if errors.Is(err, repository.ErrNotFound) {
		helper.Failure(w, http.StatusNotFound, notFound)
		return
	}
	mylog.Error(failed, err)
	helper.Failure(w, http.StatusInternalServerError, failed)
}

// invalid answers a validation error, or a 500 when err is something else.
func invalid(w http.ResponseWriter, mylog *logger.Logger, err error) {
	if fe, ok := validation.AsFieldErrors(err); ok {
		helper.ValidationFailure(w, "Please correct the highlighted fields", fe)
		return
	}
	mylog.Error("Validation could not run", err)
	helper.Failure(w, http.StatusInternalServerError, "Validation could not run")
}

func withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

type statusRequest struct {
	Status string `json:"status"`
}
