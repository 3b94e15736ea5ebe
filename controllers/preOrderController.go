package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/checkout"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/notify"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

const (
	orderPart      = "order"
	screenshotPart = "payment_screenshot"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

// orderTracking is what a customer sees when looking up their code.
type orderTracking struct {
	Order_id      string             `json:"order_id"`
	Name          string             `json:"name"`
	Date          string             `json:"date"`
	Time          string             `json:"time"`
	Items         []models.OrderLine `json:"items"`
	Total         float64            `json:"total"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
}

type cartView struct {
	Items     []models.OrderLine `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
}

func newCartView(cart *checkout.Cart) cartView {
	return cartView{Items: cart.Lines(), Total: cart.Total(), ItemCount: cart.ItemCount()}
}

// readOrderForm accepts either a JSON body or a multipart form with the
// order JSON in the "order" part and an optional screenshot file. The
// returned closer must be called once the screenshot has been consumed.
func (c *Controller) readOrderForm(w http.ResponseWriter, r *http.Request) (checkout.Form, func(), error) {
	var form checkout.Form
	noop := func() {}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return form, noop, decodeJSON(w, r, &form)
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes+maxJSONBytes)
	if err := r.ParseMultipartForm(c.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return form, noop, errUploadTooLarge
		}
		return form, noop, fmt.Errorf("invalid multipart form: %w", err)
	}

	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	if err := json.Unmarshal([]byte(r.FormValue(orderPart)), &form); err != nil {
		return form, cleanup, fmt.Errorf("invalid %q part: %w", orderPart, err)
	}

	file, header, err := r.FormFile(screenshotPart)
	if errors.Is(err, http.ErrMissingFile) {
		return form, cleanup, nil
	}
	if err != nil {
		return form, cleanup, fmt.Errorf("invalid %q part: %w", screenshotPart, err)
	}

	form.Screenshot = &checkout.Screenshot{
		Filename:    header.Filename,
		ContentType: contentType(header),
		Body:        file,
	}
	return form, func() {
		file.Close()
		cleanup()
	}, nil
}

var errUploadTooLarge = errors.New("payment screenshot is too large")

func contentType(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// checkoutFailure answers an error coming out of the checkout wizard.
func checkoutFailure(w http.ResponseWriter, err error) bool {
	step := ""
	var stepErr *checkout.StepError
	if errors.As(err, &stepErr) {
		step = stepErr.Step.String()
	}

	if errors.Is(err, checkout.ErrPaymentVerificationRequired) {
		helper.WriteJSON(w, http.StatusBadRequest, helper.Response{
			Message: checkout.PaymentVerificationRequired,
			Errors:  map[string]string{screenshotPart: "Please upload a screenshot of your payment"},
			Data:    map[string]string{"step": step},
		})
		return true
	}
	if fe, ok := validation.AsFieldErrors(err); ok {
		helper.WriteJSON(w, http.StatusBadRequest, helper.Response{
			Message: "Please correct the highlighted fields",
			Errors:  fe,
			Data:    map[string]string{"step": step},
		})
		return true
	}
	return false
}

// Validate the checkout wizard up to the given step
func (c *Controller) ValidatePreOrder(w http.ResponseWriter, r *http.Request) {
	last := checkout.StepPayment
	if v := r.URL.Query().Get("step"); v != "" {
		step, err := checkout.ParseStep(v)
		if err != nil {
			helper.Failure(w, http.StatusBadRequest, err.Error())
			return
		}
		last = step
	}

	form, closeForm, err := c.readOrderForm(w, r)
	defer closeForm()
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUploadTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		helper.Failure(w, status, err.Error())
		return
	}

	if err := checkout.ValidateThrough(&form, last, c.Now()); err != nil {
		if !checkoutFailure(w, err) {
			c.Log.Action("validate_preorder").Error("Checkout validation failed", err)
			helper.Failure(w, http.StatusInternalServerError, "Checkout validation failed")
		}
		return
	}

	data := map[string]any{"step": last.String(), "total": checkout.NewCart(form.Items...).Total()}
	if last < checkout.StepPayment {
		data["next"] = (last + 1).String()
	}
	helper.Success(w, http.StatusOK, "Step is valid", data)
}

// Place a pre-order
func (c *Controller) CreatePreOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("create_preorder")

	form, closeForm, err := c.readOrderForm(w, r)
	defer closeForm()
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUploadTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		helper.Failure(w, status, err.Error())
		return
	}

	res, err := c.Checkout.Submit(ctx, form)
	if err != nil {
		if !checkoutFailure(w, err) {
			mylog.Error("Pre-order was not placed", err)
			helper.Failure(w, http.StatusInternalServerError, "Pre-order was not placed, please try again")
		}
		return
	}

	helper.WriteJSON(w, http.StatusCreated, helper.Response{
		Success: true,
		Message: "Pre-order placed successfully",
		Data:    res.Order,
		Warning: res.Warning,
	})
}

// Track a pre-order by its code
func (c *Controller) TrackPreOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	o, err := c.Stores.Orders.Get(ctx, strings.ToUpper(mux.Vars(r)["order_id"]))
	if err != nil {
		storeFailure(w, c.Log.Action("track_preorder"), err, "Order not found", "Error occurred while fetching the order")
		return
	}

	helper.Success(w, http.StatusOK, "Order retrieved successfully", orderTracking{
		Order_id:      o.Order_id,
		Name:          o.Name,
		Date:          o.Date,
		Time:          o.Time,
		Items:         o.Items,
		Total:         o.Total,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
	})
}

// Rebuild a cart from a stored order
func (c *Controller) ReorderPreOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	o, err := c.Stores.Orders.Get(ctx, strings.ToUpper(mux.Vars(r)["order_id"]))
	if err != nil {
		storeFailure(w, c.Log.Action("reorder_preorder"), err, "Order not found", "Error occurred while fetching the order")
		return
	}

	helper.Success(w, http.StatusOK, "Cart rebuilt from your previous order", newCartView(checkout.ReorderFromOrder(o)))
}

// Rebuild a cart from a raw item list kept by the client
func (c *Controller) ReorderCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	cart := checkout.Reorder(body.Items)
	message := "Cart rebuilt from your previous order"
	if len(body.Items) > 0 && cart.Len() == 0 {
		message = "None of the previous items could be added"
	}
	helper.Success(w, http.StatusOK, message, newCartView(cart))
}

// List pre-orders for the back office, newest first
func (c *Controller) GetPreOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_preorders")

	filter := bson.M{}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}
	if s := r.URL.Query().Get("payment_status"); s != "" {
		filter["payment_status"] = s
	}
	page, recordPerPage := helper.ParsePagination(r)

	total, err := c.Stores.Orders.Count(ctx, filter)
	if err != nil {
		mylog.Error("Error occurred while listing orders", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing orders")
		return
	}
	orders, err := c.Stores.Orders.List(ctx, repository.Query{Filter: filter, Sort: newestFirst, Page: page, PerPage: recordPerPage})
	if err != nil {
		mylog.Error("Error occurred while listing orders", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing orders")
		return
	}

	helper.WriteJSON(w, http.StatusOK, helper.Response{
		Success:    true,
		Message:    "Orders retrieved successfully",
		Data:       orders,
		Pagination: helper.NewPagination(page, recordPerPage, total),
	})
}

func (c *Controller) GetPreOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	o, err := c.Stores.Orders.Get(ctx, mux.Vars(r)["order_id"])
	if err != nil {
		storeFailure(w, c.Log.Action("get_preorder"), err, "Order not found", "Error occurred while fetching the order")
		return
	}
	helper.Success(w, http.StatusOK, "Order retrieved successfully", o)
}

// Move an order to a new status; reaching "ready" emails the customer
func (c *Controller) UpdatePreOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("update_preorder_status")
	key := mux.Vars(r)["order_id"]

	var body statusRequest
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if !models.OrderStatuses[body.Status] {
		helper.Failure(w, http.StatusBadRequest, fmt.Sprintf("Invalid order status %q", body.Status))
		return
	}

	before, err := c.Stores.Orders.Get(ctx, key)
	if err != nil {
		storeFailure(w, mylog, err, "Order not found", "Order update failed")
		return
	}
	after, err := c.Stores.Orders.Update(ctx, key, bson.M{"status": body.Status})
	if err != nil {
		storeFailure(w, mylog, err, "Order not found", "Order update failed")
		return
	}

	mylog.Info("Order status changed", "order_id", key, "from", before.Status, "to", after.Status)
	if before.Status != after.Status {
		notify.BestEffort(ctx, c.Notifier, c.Log, notify.OrderStatusChanged(after, before.Status, c.Now()))
	}
	helper.Success(w, http.StatusOK, "Order status updated successfully", after)
}

func (c *Controller) UpdatePreOrderPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("update_preorder_payment")

	var body struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if !models.PaymentStatuses[body.PaymentStatus] {
		helper.Failure(w, http.StatusBadRequest, fmt.Sprintf("Invalid payment status %q", body.PaymentStatus))
		return
	}

	o, err := c.Stores.Orders.Update(ctx, mux.Vars(r)["order_id"], bson.M{"payment_status": body.PaymentStatus})
	if err != nil {
		storeFailure(w, mylog, err, "Order not found", "Payment update failed")
		return
	}

	mylog.Info("Payment status changed", "order_id", o.Order_id, "payment_status", o.PaymentStatus)
	helper.Success(w, http.StatusOK, "Payment status updated successfully", o)
}

func (c *Controller) DeletePreOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("delete_preorder")

	o, err := c.Stores.Orders.Delete(ctx, mux.Vars(r)["order_id"])
	if err != nil {
		storeFailure(w, mylog, err, "Order not found", "Order deletion failed")
		return
	}

	mylog.Info("Order deleted", "order_id", o.Order_id)
	helper.Success(w, http.StatusOK, "Order deleted successfully", o)
}
