package main

import (
	"net/http"

	"github.com/Zyntrix-company/Qruzine/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listRestaurantsHandler godoc
//
//	@Summary	List restaurants
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}		domain.Restaurant
//	@Failure	403	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, err := app.services.restaurants.List(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createRestaurantHandler godoc
//
//	@Summary	Create restaurant
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.RestaurantInput	true	"Restaurant"
//	@Success	201		{object}	domain.Restaurant
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RestaurantInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.services.restaurants.Create(r.Context(), req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "Restaurant created successfully", restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary	Get restaurant
//	@Tags		admin
//	@Produce	json
//	@Param		id	path		string	true	"Restaurant ID"
//	@Success	200	{object}	domain.Restaurant
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/restaurants/{id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.services.restaurants.Get(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary	Update restaurant
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Restaurant ID"
//	@Param		request	body		service.RestaurantInput	true	"Fields to change"
//	@Success	200		{object}	domain.Restaurant
//	@Failure	400		{object}	envelope
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/restaurants/{id} [put]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.updateRestaurant(w, r, id, "Restaurant updated successfully")
}

func (app *application) updateRestaurant(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, message string) {
	var req service.RestaurantInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.services.restaurants.Update(r.Context(), id, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, message, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary	Delete restaurant
//	@Tags		admin
//	@Produce	json
//	@Param		id	path		string	true	"Restaurant ID"
//	@Success	200	{object}	envelope
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/restaurants/{id} [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.services.restaurants.Delete(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Restaurant deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listSubadminsHandler godoc
//
//	@Summary	List subadmins
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}	domain.User
//	@Security	ApiKeyAuth
//	@Router		/admin/subadmins [get]
func (app *application) listSubadminsHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.services.users.ListSubadmins(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, users); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createSubadminHandler godoc
//
//	@Summary	Create subadmin
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.SubadminInput	true	"Subadmin"
//	@Success	201		{object}	domain.User
//	@Failure	400		{object}	envelope
//	@Failure	409		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/subadmins [post]
func (app *application) createSubadminHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SubadminInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.services.users.CreateSubadmin(r.Context(), req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "Subadmin created successfully", user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getSubadminHandler godoc
//
//	@Summary	Get subadmin
//	@Tags		admin
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	domain.User
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/subadmins/{id} [get]
func (app *application) getSubadminHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.services.users.GetSubadmin(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateSubadminHandler godoc
//
//	@Summary	Update subadmin
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User ID"
//	@Param		request	body		service.SubadminUpdate	true	"Fields to change"
//	@Success	200		{object}	domain.User
//	@Failure	400		{object}	envelope
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/subadmins/{id} [put]
func (app *application) updateSubadminHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req service.SubadminUpdate
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.services.users.UpdateSubadmin(r.Context(), id, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Subadmin updated successfully", user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteSubadminHandler godoc
//
//	@Summary	Delete subadmin
//	@Tags		admin
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	envelope
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/admin/subadmins/{id} [delete]
func (app *application) deleteSubadminHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.services.users.DeleteSubadmin(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Subadmin deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminStatsHandler godoc
//
//	@Summary	Platform statistics
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	service.AdminStats
//	@Security	ApiKeyAuth
//	@Router		/admin/stats [get]
func (app *application) adminStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.services.stats.Admin(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
