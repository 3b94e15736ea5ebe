package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
)

type watchFunc func(ctx context.Context, q repository.Query, fn func(any)) error

func watchAs[T any](s repository.Store[T]) watchFunc {
	return func(ctx context.Context, q repository.Query, fn func(any)) error {
		return s.Watch(ctx, q, func(items []T) { fn(items) })
	}
}

type feed struct {
	watch watchFunc
	sort  bson.D
}

func (c *Controller) feeds() map[string]feed {
	return map[string]feed{
		repository.MenuCollection:        {watchAs(c.Stores.Menu), menuSort},
		repository.OrderCollection:       {watchAs(c.Stores.Orders), newestFirst},
		repository.ReservationCollection: {watchAs(c.Stores.Reservations), byVisit},
		repository.ContactCollection:     {watchAs(c.Stores.Contacts), newestFirst},
		repository.TimelineCollection:    {watchAs(c.Stores.Timeline), displayOrder},
		repository.TeamCollection:        {watchAs(c.Stores.Team), displayOrder},
		repository.ValueCollection:       {watchAs(c.Stores.Values), displayOrder},
		repository.AchievementCollection: {watchAs(c.Stores.Achievements), displayOrder},
	}
}

// Stream sends the whole collection as a server-sent event, then again
// after every change, until the client goes away.
func (c *Controller) Stream(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["collection"]
	mylog := c.Log.Action("stream").With("collection", name)

	f, ok := c.feeds()[name]
	if !ok {
		helper.Failure(w, http.StatusNotFound, "Unknown collection")
		return
	}

	q := repository.Query{Sort: f.sort}
	if s := r.URL.Query().Get("status"); s != "" {
		q.Filter = bson.M{"status": s}
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	if c.Closing != nil {
		stop := context.AfterFunc(c.Closing, cancel)
		defer stop()
	}

	mylog.Debug("Subscriber connected")
	err := f.watch(ctx, q, func(snapshot any) {
		data, err := json.Marshal(snapshot)
		if err != nil {
			mylog.Error("Could not encode snapshot", err)
			cancel()
			return
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
			cancel()
			return
		}
		if err := rc.Flush(); err != nil {
			cancel()
		}
	})
	if err != nil {
		mylog.Error("Stream ended with an error", err)
		fmt.Fprintf(w, "event: error\ndata: %q\n\n", "stream interrupted")
		_ = rc.Flush()
		return
	}
	mylog.Debug("Subscriber disconnected")
}
