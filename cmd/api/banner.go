package main

import (
	"net/http"

	"github.com/Zyntrix-company/Qruzine/internal/service"
)

// listPublicBannersHandler godoc
//
//	@Summary	Active banners of a restaurant, in display order
//	@Tags		banner
//	@Produce	json
//	@Param		resID	path	string	true	"Restaurant ID"
//	@Success	200		{array}	domain.Banner
//	@Router		/banner/public/{resID} [get]
func (app *application) listPublicBannersHandler(w http.ResponseWriter, r *http.Request) {
	resID, err := pathID(r, "resID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	banners, err := app.services.banners.PublicList(r.Context(), resID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, banners); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listBannersHandler godoc
//
//	@Summary	List banners
//	@Tags		banner
//	@Produce	json
//	@Success	200	{array}	domain.Banner
//	@Security	ApiKeyAuth
//	@Router		/banner [get]
func (app *application) listBannersHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	banners, err := app.services.banners.List(r.Context(), rid)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, banners); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getBannerHandler godoc
//
//	@Summary	Get banner
//	@Tags		banner
//	@Produce	json
//	@Param		id	path		string	true	"Banner ID"
//	@Success	200	{object}	domain.Banner
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/banner/{id} [get]
func (app *application) getBannerHandler(w http.ResponseWriter, r *http.Request) {
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

	banner, err := app.services.banners.Get(r.Context(), rid, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, banner); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createBannerHandler godoc
//
//	@Summary	Create banner
//	@Tags		banner
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.BannerInput	true	"Banner"
//	@Success	201		{object}	domain.Banner
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/banner [post]
func (app *application) createBannerHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var req service.BannerInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	banner, err := app.services.banners.Create(r.Context(), rid, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "Banner created successfully", banner); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateBannerHandler godoc
//
//	@Summary	Update banner
//	@Tags		banner
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Banner ID"
//	@Param		request	body		service.BannerInput	true	"Fields to change"
//	@Success	200		{object}	domain.Banner
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/banner/{id} [put]
func (app *application) updateBannerHandler(w http.ResponseWriter, r *http.Request) {
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

	var req service.BannerInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	banner, err := app.services.banners.Update(r.Context(), rid, id, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Banner updated successfully", banner); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteBannerHandler godoc
//
//	@Summary	Delete banner
//	@Tags		banner
//	@Produce	json
//	@Param		id	path		string	true	"Banner ID"
//	@Success	200	{object}	envelope
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/banner/{id} [delete]
func (app *application) deleteBannerHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.services.banners.Delete(r.Context(), rid, id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Banner deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
