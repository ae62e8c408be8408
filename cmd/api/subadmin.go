package main

import "net/http"

// subadminProfileHandler godoc
//
//	@Summary	Subadmin profile
//	@Tags		subadmin
//	@Produce	json
//	@Success	200	{object}	domain.User
//	@Security	ApiKeyAuth
//	@Router		/subadmin/profile [get]
func (app *application) subadminProfileHandler(w http.ResponseWriter, r *http.Request) {
	app.meHandler(w, r)
}

// subadminRestaurantHandler godoc
//
//	@Summary	Own restaurant
//	@Tags		subadmin
//	@Produce	json
//	@Success	200	{object}	domain.Restaurant
//	@Security	ApiKeyAuth
//	@Router		/subadmin/restaurant [get]
func (app *application) subadminRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	restaurant, err := app.services.restaurants.Get(r.Context(), rid)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// subadminUpdateRestaurantHandler godoc
//
//	@Summary	Update own restaurant
//	@Tags		subadmin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.RestaurantInput	true	"Fields to change"
//	@Success	200		{object}	domain.Restaurant
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/subadmin/restaurant [put]
func (app *application) subadminUpdateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.updateRestaurant(w, r, rid, "Restaurant updated successfully")
}

// subadminDashboardHandler godoc
//
//	@Summary	Today's numbers for the own restaurant
//	@Tags		subadmin
//	@Produce	json
//	@Success	200	{object}	service.Dashboard
//	@Security	ApiKeyAuth
//	@Router		/subadmin/dashboard [get]
func (app *application) subadminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	dashboard, err := app.services.stats.Dashboard(r.Context(), rid)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, dashboard); err != nil {
		app.internalServerError(w, r, err)
	}
}
