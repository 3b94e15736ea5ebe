package controller

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/catalog"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var menuSort = bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}

// Get the menu, narrowed by search, category, dietary and featured
func (c *Controller) GetMenus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("get_menus")

	q := r.URL.Query()
	filter := catalog.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Dietary:  catalog.ParseTags(q["dietary"]),
	}
	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			helper.Failure(w, http.StatusBadRequest, "featured must be true or false")
			return
		}
		filter.FeaturedOnly = featured
	}

	items, err := c.Stores.Menu.List(ctx, repository.Query{Sort: menuSort})
	if err != nil {
		mylog.Error("Error occurred while listing the menu items", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing the menu items")
		return
	}

	helper.Success(w, http.StatusOK, "Menu items retrieved successfully", catalog.Apply(items, filter))
}

func (c *Controller) GetMenuCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	items, err := c.Stores.Menu.List(ctx, repository.Query{Sort: menuSort})
	if err != nil {
		c.Log.Action("get_menu_categories").Error("Error occurred while listing the menu items", err)
		helper.Failure(w, http.StatusInternalServerError, "Error occurred while listing the menu items")
		return
	}

	helper.Success(w, http.StatusOK, "Categories retrieved successfully", catalog.Categories(items))
}

// Get a single menu item
func (c *Controller) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	item, err := c.Stores.Menu.Get(ctx, mux.Vars(r)["item_id"])
	if err != nil {
		storeFailure(w, c.Log.Action("get_menu"), err, "Menu item not found", "Error occurred while fetching the menu item")
		return
	}

	helper.Success(w, http.StatusOK, "Menu item retrieved successfully", item)
}

// Create a menu item
func (c *Controller) CreateMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("create_menu")

	var item models.MenuItem
	if err := decodeJSON(w, r, &item); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.Struct(&item); err != nil {
		invalid(w, mylog, err)
		return
	}
	if item.Dietary == nil {
		item.Dietary = []string{}
	}
	if item.Allergens == nil {
		item.Allergens = []string{}
	}

	if err := c.Stores.Menu.Insert(ctx, &item); err != nil {
		mylog.Error("Menu item was not created", err)
		helper.Failure(w, http.StatusInternalServerError, "Menu item was not created")
		return
	}

	mylog.Info("Menu item created", "item_id", item.Item_id)
	helper.Success(w, http.StatusCreated, "Menu item created successfully", item)
}

// Update a menu item; only the fields present in the body change
func (c *Controller) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("update_menu")

	var upd models.MenuItemUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		helper.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.Struct(&upd); err != nil {
		invalid(w, mylog, err)
		return
	}

	set := upd.Fields()
	if len(set) == 0 {
		helper.Failure(w, http.StatusBadRequest, "No fields to update")
		return
	}

	item, err := c.Stores.Menu.Update(ctx, mux.Vars(r)["item_id"], set)
	if err != nil {
		storeFailure(w, mylog, err, "Menu item not found", "Menu item update failed")
		return
	}

	helper.Success(w, http.StatusOK, "Menu item updated successfully", item)
}

// Delete a menu item
func (c *Controller) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()
	mylog := c.Log.Action("delete_menu")

	item, err := c.Stores.Menu.Delete(ctx, mux.Vars(r)["item_id"])
	if err != nil {
		storeFailure(w, mylog, err, "Menu item not found", "Menu item deletion failed")
		return
	}

	mylog.Info("Menu item deleted", "item_id", item.Item_id)
	helper.Success(w, http.StatusOK, "Menu item deleted successfully", item)
}
