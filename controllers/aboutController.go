package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var displayOrder = bson.D{{Key: "order", Value: 1}}

// aboutSection is one editable list on the About page.
type aboutSection interface {
	create(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error)
	update(ctx context.Context, key string, w http.ResponseWriter, r *http.Request) (any, error)
	delete(ctx context.Context, key string) (any, error)
}

type section[T any, P interface {
	*T
	repository.Document
}] struct {
	store repository.Store[T]
	key   string
}

func (s section[T, P]) create(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
	var doc T
	if err := decodeJSON(w, r, &doc); err != nil {
		return nil, err
	}
	if err := validation.Struct(&doc); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, P(&doc)); err != nil {
		return nil, err
	}
	return doc, nil
}

// update overlays the request body on the stored entry, so fields left out
// keep their value, and writes the result back.
func (s section[T, P]) update(ctx context.Context, key string, w http.ResponseWriter, r *http.Request) (any, error) {
	doc, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(w, r, &doc); err != nil {
		return nil, err
	}
	if err := validation.Struct(&doc); err != nil {
		return nil, err
	}

	raw, err := bson.Marshal(&doc)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	for _, k := range []string{"_id", "created_at", "updated_at", s.key} {
		delete(set, k)
	}

	return s.store.Update(ctx, key, set)
}

func (s section[T, P]) delete(ctx context.Context, key string) (any, error) {
	return s.store.Delete(ctx, key)
}

func (c *Controller) aboutSections() map[string]aboutSection {
	return map[string]aboutSection{
		"timeline":     section[models.TimelineEvent, *models.TimelineEvent]{c.Stores.Timeline, "timeline_id"},
		"team":         section[models.TeamMember, *models.TeamMember]{c.Stores.Team, "member_id"},
		"values":       section[models.Value, *models.Value]{c.Stores.Values, "value_id"},
		"achievements": section[models.Achievement, *models.Achievement]{c.Stores.Achievements, "achievement_id"},
	}
}

// Get everything the About page shows, each list in display order
func (c *Controller) GetAbout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_about")

	var about models.About
	var err error
	q := repository.Query{Sort: displayOrder}

	if about.Timeline, err = c.Stores.Timeline.List(ctx, q); err == nil {
		if about.Team, err = c.Stores.Team.List(ctx, q); err == nil {
			if about.Values, err = c.Stores.Values.List(ctx, q); err == nil {
				about.Achievements, err = c.Stores.Achievements.List(ctx, q)
			}
		}
	}
	if err != nil {
		mylog.Error("Error occurred while loading the About page", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while loading the About page")
		return
	}

	helper.Success(w, http.StatusOK, "About page retrieved successfully", about)
}

// GetIcons lists the icons values and achievements may use.
func (c *Controller) GetIcons(w http.ResponseWriter, r *http.Request) {
	type icon struct {
		Name  models.IconName `json:"name"`
		Label string          `json:"label"`
	}
	icons := []icon{}
	for _, i := range models.Icons() {
		icons = append(icons, icon{Name: i, Label: i.Label()})
	}
	helper.Success(w, http.StatusOK, "Icons retrieved successfully", icons)
}

func (c *Controller) sectionFor(w http.ResponseWriter, r *http.Request) (aboutSection, bool) {
	s, ok := c.aboutSections()[mux.Vars(r)["section"]]
	if !ok {
		helper.Failure(w, http.StatusNotFound, "Unknown About section")
	}
	return s, ok
}

func (c *Controller) aboutFailure(w http.ResponseWriter, err error, failed string) {
	mylog := c.Log.Action("edit_about")
	switch {
	case errors.Is(err, errBadBody):
		helper.Failure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		helper.Failure(w, http.StatusNotFound, "Entry not found")
	default:
		if fe, ok := validation.AsFieldErrors(err); ok {
			helper.ValidationFailure(w, "Please correct the highlighted fields", fe)
			return
		}
		mylog.Error(failed, err)
		helper.Failure(w, http.StatusInternalServerError, failed)
	}
}

func (c *Controller) CreateAboutEntry(w http.ResponseWriter, r *http.Request) {
	s, ok := c.sectionFor(w, r)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()

	doc, err := s.create(ctx, w, r)
	if err != nil {
		c.aboutFailure(w, err, "Entry was not created")
		return
	}
	helper.Success(w, http.StatusCreated, "Entry created successfully", doc)
}

func (c *Controller) UpdateAboutEntry(w http.ResponseWriter, r *http.Request) {
	s, ok := c.sectionFor(w, r)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()

	doc, err := s.update(ctx, mux.Vars(r)["id"], w, r)
	if err != nil {
		c.aboutFailure(w, err, "Entry update failed")
		return
	}
	helper.Success(w, http.StatusOK, "Entry updated successfully", doc)
}

func (c *Controller) DeleteAboutEntry(w http.ResponseWriter, r *http.Request) {
	s, ok := c.sectionFor(w, r)
	if !ok {
		return
	}
	ctx, cancel := withTimeout(r)
	defer cancel()

	doc, err := s.delete(ctx, mux.Vars(r)["id"])
	if err != nil {
		c.aboutFailure(w, err, "Entry deletion failed")
		return
	}
	helper.Success(w, http.StatusOK, "Entry deleted successfully", doc)
}
