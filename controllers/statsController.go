package controller

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

type dashboardStats struct {
	PendingOrders       int64 `json:"pending_orders"`
	ReadyOrders         int64 `json:"ready_orders"`
	UnverifiedPayments  int64 `json:"unverified_payments"`
	PendingReservations int64 `json:"pending_reservations"`
	UnreadMessages      int64 `json:"unread_messages"`
	MenuItems           int64 `json:"menu_items"`
}

// Counts for the back office dashboard
func (c *Controller) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_stats")

	var stats dashboardStats
	counts := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&stats.PendingOrders, func() (int64, error) {
			return c.Stores.Orders.Count(ctx, bson.M{"status": models.OrderPending})
		}},
		{&stats.ReadyOrders, func() (int64, error) {
			return c.Stores.Orders.Count(ctx, bson.M{"status": models.OrderReady})
		}},
		{&stats.UnverifiedPayments, func() (int64, error) {
			return c.Stores.Orders.Count(ctx, bson.M{"payment_status": models.PaymentPendingVerification})
		}},
		{&stats.PendingReservations, func() (int64, error) {
			return c.Stores.Reservations.Count(ctx, bson.M{"status": models.ReservationPending})
		}},
		{&stats.UnreadMessages, func() (int64, error) {
			return c.Stores.Contacts.Count(ctx, bson.M{"status": models.ContactUnread})
		}},
		{&stats.MenuItems, func() (int64, error) {
			return c.Stores.Menu.Count(ctx, nil)
		}},
	}

	for _, ct := range counts {
		n, err := ct.count()
		if err != nil {
			mylog.Error("Error occurred while counting", err)
			helper.Failure(w, http.StatusInternalServerError, "Error occurred while loading the dashboard")
			return
		}
		*ct.dst = n
	}

	helper.Success(w, http.StatusOK, "Dashboard retrieved successfully", stats)
}
