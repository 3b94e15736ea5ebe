package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/booking"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/notify"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var byVisit = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}

// Validate the reservation wizard up to the given step
func (c *Controller) ValidateReservation(w http.ResponseWriter, r *http.Request) {
	last := booking.LastStep
	if v := r.URL.Query().Get("step"); v != "" {
		step, err := booking.ParseStep(v)
		if err != nil {
			helper.Failure(w, http.StatusBadRequest, err.Error())
			return
		}
		last = step
	}

	var res models.Reservation
	if err := decodeJSON(w, r, &res); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := booking.ValidateThrough(&res, last, c.Now()); err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			helper.WriteJSON(w, http.StatusBadRequest, helper.Response{
				Message: "Please correct the highlighted fields",
				Errors:  fe,
				Data:    map[string]int{"step": last},
			})
			return
		}
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	data := map[string]int{"step": last}
	if last < booking.LastStep {
		data["next"] = last + 1
	}
	helper.Success(w, http.StatusOK, "Step is valid", data)
}

// Request a table
func (c *Controller) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var res models.Reservation
	if err := decodeJSON(w, r, &res); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}

	booked, err := c.Booking.Book(ctx, res)
	if err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			helper.ValidationFailure(w, "Please correct the highlighted fields", fe)
			return
		}
		helper.Failure(w, http.StatusInternalServerError, "Reservation was not saved, please try again")
		return
	}

	helper.Success(w, http.StatusCreated, "Reservation request received", booked)
}

func (c *Controller) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_reservations")

	filter := bson.M{}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}
	if d := r.URL.Query().Get("date"); d != "" {
		filter["date"] = d
	}
	page, recordPerPage := helper.ParsePagination(r)

	total, err := c.Stores.Reservations.Count(ctx, filter)
	if err != nil {
		mylog.Error("Error occurred while listing reservations", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing reservations")
		return
	}
	list, err := c.Stores.Reservations.List(ctx, repository.Query{Filter: filter, Sort: byVisit, Page: page, PerPage: recordPerPage})
	if err != nil {
		mylog.Error("Error occurred while listing reservations", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing reservations")
		return
	}

	helper.WriteJSON(w, http.StatusOK, helper.Response{
		Success:    true,
		Message:    "Reservations retrieved successfully",
		Data:       list,
		Pagination: helper.NewPagination(page, recordPerPage, total),
	})
}

// Move a reservation to a new status; confirming it emails the guest
func (c *Controller) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("update_reservation_status")
	key := mux.Vars(r)["reservation_id"]

	var body statusRequest
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ReservationStatuses[body.Status] {
		helper.Failure(w, http.StatusBadRequest, fmt.Sprintf("Invalid reservation status %q", body.Status))
		return
	}

	before, err := c.Stores.Reservations.Get(ctx, key)
	if err != nil {
		storeFailure(w, mylog, err, "Reservation not found", "Reservation update failed")
		return
	}
	after, err := c.Stores.Reservations.Update(ctx, key, bson.M{"status": body.Status})
	if err != nil {
		storeFailure(w, mylog, err, "Reservation not found", "Reservation update failed")
		return
	}

	mylog.Info("Reservation status changed", "reservation_id", key, "from", before.Status, "to", after.Status)
	if before.Status != after.Status {
		notify.BestEffort(ctx, c.Notifier, c.Log, notify.ReservationStatusChanged(after, before.Status, c.Now()))
	}
	helper.Success(w, http.StatusOK, "Reservation status updated successfully", after)
}

func (c *Controller) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("delete_reservation")

	res, err := c.Stores.Reservations.Delete(ctx, mux.Vars(r)["reservation_id"])
	if err != nil {
		storeFailure(w, mylog, err, "Reservation not found", "Reservation deletion failed")
		return
	}

	mylog.Info("Reservation deleted", "reservation_id", res.Reservation_id)
	helper.Success(w, http.StatusOK, "Reservation deleted successfully", res)
}
