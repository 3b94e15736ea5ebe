package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/notify"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

// Leave a message through the contact form
func (c *Controller) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("create_contact")

	var msg models.Contact
	if err := decodeJSON(w, r, &msg); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.Struct(&msg); err != nil {
		invalid(w, mylog, err)
		return
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Status = models.ContactUnread

	if err := c.Stores.Contacts.Insert(ctx, &msg); err != nil {
		mylog.Error("Message was not saved", err)
		helper.Failure(w, http.StatusInternalServerError, "Message was not sent, please try again")
		return
	}

	helper.Success(w, http.StatusCreated, "Thank you, we will get back to you soon", msg)
}

func (c *Controller) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_contacts")

	filter := bson.M{}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}
	page, recordPerPage := helper.ParsePagination(r)

	total, err := c.Stores.Contacts.Count(ctx, filter)
	if err != nil {
		mylog.Error("Error occurred while listing messages", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing messages")
		return
	}
	list, err := c.Stores.Contacts.List(ctx, repository.Query{Filter: filter, Sort: newestFirst, Page: page, PerPage: recordPerPage})
	if err != nil {
		mylog.Error("Error occurred while listing messages", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing messages")
		return
	}

	helper.WriteJSON(w, http.StatusOK, helper.Response{
		Success:    true,
		Message:    "Messages retrieved successfully",
		Data:       list,
		Pagination: helper.NewPagination(page, recordPerPage, total),
	})
}

func (c *Controller) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("update_contact_status")
	key := mux.Vars(r)["contact_id"]

	var body statusRequest
	if err := decodeJSON(w, r, &body); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ContactStatuses[body.Status] {
		helper.Failure(w, http.StatusBadRequest, fmt.Sprintf("Invalid message status %q", body.Status))
		return
	}

	before, err := c.Stores.Contacts.Get(ctx, key)
	if err != nil {
		storeFailure(w, mylog, err, "Message not found", "Message update failed")
		return
	}
	after, err := c.Stores.Contacts.Update(ctx, key, bson.M{"status": body.Status})
	if err != nil {
		storeFailure(w, mylog, err, "Message not found", "Message update failed")
		return
	}

	if before.Status != after.Status {
		notify.BestEffort(ctx, c.Notifier, c.Log, notify.ContactStatusChanged(after, before.Status, c.Now()))
	}
	helper.Success(w, http.StatusOK, "Message status updated successfully", after)
}

func (c *Controller) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("delete_contact")

	msg, err := c.Stores.Contacts.Delete(ctx, mux.Vars(r)["contact_id"])
	if err != nil {
		storeFailure(w, mylog, err, "Message not found", "Message deletion failed")
		return
	}

	mylog.Info("Message deleted", "contact_id", msg.Contact_id)
	helper.Success(w, http.StatusOK, "Message deleted successfully", msg)
}
