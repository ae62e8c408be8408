package main

import (
	"net/http"

	"github.com/Zyntrix-company/Qruzine/internal/service"
)

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

// getPublicMenuHandler godoc
//
//	@Summary		Guest menu
//	@Description	Available items of a restaurant grouped by category, for the table behind the scanned QR code
//	@Tags			menu
//	@Produce		json
//	@Param			resID	path		string	true	"Restaurant ID"
//	@Param			qrID	path		string	true	"QR code ID"
//	@Success		200		{object}	service.PublicMenu
//	@Failure		400		{object}	envelope
//	@Failure		404		{object}	envelope
//	@Router			/menu/public/{resID}/{qrID} [get]
func (app *application) getPublicMenuHandler(w http.ResponseWriter, r *http.Request) {
	resID, err := pathID(r, "resID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	qrID, err := pathID(r, "qrID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	menu, err := app.services.menu.PublicMenu(r.Context(), resID, qrID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMenuItemsHandler godoc
//
//	@Summary	List menu items
//	@Tags		menu
//	@Produce	json
//	@Param		restaurantID	query		string	false	"Restaurant ID (admin only)"
//	@Success	200				{array}		domain.MenuItem
//	@Failure	400				{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu [get]
func (app *application) listMenuItemsHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	items, err := app.services.menu.List(r.Context(), rid)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuItemHandler godoc
//
//	@Summary	Get menu item
//	@Tags		menu
//	@Produce	json
//	@Param		id	path		string	true	"Menu item ID"
//	@Success	200	{object}	domain.MenuItem
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu/{id} [get]
func (app *application) getMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.services.menu.Get(r.Context(), rid, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createMenuItemHandler godoc
//
//	@Summary	Create menu item
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.MenuItemInput	true	"Menu item"
//	@Success	201		{object}	domain.MenuItem
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu [post]
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var req service.MenuItemInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.services.menu.Create(r.Context(), rid, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "Menu item created successfully", item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuItemHandler godoc
//
//	@Summary	Update menu item
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Menu item ID"
//	@Param		request	body		service.MenuItemInput	true	"Fields to change"
//	@Success	200		{object}	domain.MenuItem
//	@Failure	400		{object}	envelope
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu/{id} [put]
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req service.MenuItemInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.services.menu.Update(r.Context(), rid, id, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Menu item updated successfully", item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// setAvailabilityHandler godoc
//
//	@Summary	Toggle menu item availability
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Menu item ID"
//	@Param		request	body		AvailabilityRequest	true	"Availability"
//	@Success	200		{object}	domain.MenuItem
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu/{id}/availability [patch]
func (app *application) setAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req AvailabilityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.services.menu.SetAvailability(r.Context(), rid, id, *req.IsAvailable)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Availability updated", item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuItemHandler godoc
//
//	@Summary	Delete menu item
//	@Tags		menu
//	@Produce	json
//	@Param		id	path		string	true	"Menu item ID"
//	@Success	200	{object}	envelope
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu/{id} [delete]
func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.services.menu.Delete(r.Context(), rid, id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Menu item deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
