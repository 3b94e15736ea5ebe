package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
)

// UploadFailed is stored in place of the screenshot URL when the upload
// did not go through.
const UploadFailed = "upload_failed"

const UploadWarning = "Your payment screenshot could not be uploaded. The order was placed and our team will verify the payment manually."

const maxCodeAttempts = 5

var ErrOrderCodeExhausted = errors.New("could not allocate a free order code")

type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// OrderStore is the part of the pre-order collection checkout writes to.
type OrderStore interface {
	Get(ctx context.Context, key string) (models.PreOrder, error)
	Insert(ctx context.Context, doc repository.Document) error
}

type Result struct {
	Order   models.PreOrder
	Warning string
}

type Service struct {
	orders   OrderStore
	uploader Uploader
	log      *logger.Logger
	now      func() time.Time
	newCode  func() (string, error)
}

func NewService(orders OrderStore, uploader Uploader, log *logger.Logger) *Service {
	return &Service{
		orders:   orders,
		uploader: uploader,
		log:      log,
		now:      time.Now,
		newCode:  helper.GenerateOrderCode,
	}
}

// Submit validates the whole form, uploads the payment screenshot and writes
// one pre-order document. A failed upload does not block the order.
func (s *Service) Submit(ctx context.Context, form Form) (Result, error) {
	mylog := s.log.Action("submit_preorder")

	if err := ValidateThrough(&form, StepPayment, s.now()); err != nil {
		return Result{}, err
	}

	cart := NewCart(form.Items...)

	code, err := s.uniqueCode(ctx)
	if err != nil {
		mylog.Error("Failed to allocate order code", err)
		return Result{}, err
	}
	mylog = mylog.With("order_id", code)

	screenshotURL, warning := s.upload(ctx, code, form.Screenshot, mylog)

	paymentMethod := form.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentBankTransfer
	}

	order := models.PreOrder{
		Order_id:             code,
		Name:                 strings.TrimSpace(form.Name),
		Email:                strings.TrimSpace(form.Email),
		Phone:                strings.TrimSpace(form.Phone),
		Date:                 form.Date,
		Time:                 form.Time,
		Items:                cart.Lines(),
		Status:               models.OrderPending,
		Total:                cart.Total(),
		PaymentStatus:        models.PaymentPendingVerification,
		PaymentScreenshotUrl: screenshotURL,
		PaymentMethod:        paymentMethod,
	}
	if warning != "" {
		order.UploadWarning = warning
	}

	if err := s.orders.Insert(ctx, &order); err != nil {
		mylog.Error("Failed to save pre-order", err)
		return Result{}, fmt.Errorf("save pre-order: %w", err)
	}

	mylog.Info("Pre-order placed", "total", order.Total, "lines", len(order.Items))
	return Result{Order: order, Warning: warning}, nil
}

func (s *Service) upload(ctx context.Context, code string, shot *Screenshot, mylog *logger.Logger) (string, string) {
	if s.uploader == nil {
		mylog.Warn("No uploader configured, storing sentinel")
		return UploadFailed, UploadWarning
	}

	name := code + "-" + shot.Filename
	url, err := s.uploader.Upload(ctx, name, shot.ContentType, shot.Body)
	if err != nil {
		mylog.Error("Payment screenshot upload failed", err)
		return UploadFailed, UploadWarning
	}
	return url, ""
}

// Codes are random; a lookup guards against reusing one that is taken.
func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		_, err = s.orders.Get(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("check order code: %w", err)
		}
	}
	return "", ErrOrderCodeExhausted
}
