package main

import (
	"net/http"

	"github.com/Zyntrix-company/Qruzine/internal/service"
)

// listPublicCategoriesHandler godoc
//
//	@Summary	Active categories of a restaurant
//	@Tags		categories
//	@Produce	json
//	@Param		resID	path	string	true	"Restaurant ID"
//	@Success	200		{array}	domain.Category
//	@Router		/categories/public/{resID} [get]
func (app *application) listPublicCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	resID, err := pathID(r, "resID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	categories, err := app.services.categories.PublicList(r.Context(), resID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCategoriesHandler godoc
//
//	@Summary	List categories
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	domain.Category
//	@Security	ApiKeyAuth
//	@Router		/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	categories, err := app.services.categories.List(r.Context(), rid)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCategoryHandler godoc
//
//	@Summary	Get category
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"
//	@Success	200	{object}	domain.Category
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/categories/{id} [get]
func (app *application) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
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

	category, err := app.services.categories.Get(r.Context(), rid, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createCategoryHandler godoc
//
//	@Summary	Create category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.CategoryInput	true	"Category"
//	@Success	201		{object}	domain.Category
//	@Failure	400		{object}	envelope
//	@Failure	409		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/categories [post]
func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var req service.CategoryInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category, err := app.services.categories.Create(r.Context(), rid, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "Category created successfully", category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateCategoryHandler godoc
//
//	@Summary	Update category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Category ID"
//	@Param		request	body		service.CategoryInput	true	"Fields to change"
//	@Success	200		{object}	domain.Category
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/categories/{id} [put]
func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
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

	var req service.CategoryInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category, err := app.services.categories.Update(r.Context(), rid, id, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Category updated successfully", category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCategoryHandler godoc
//
//	@Summary	Delete category
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"
//	@Success	200	{object}	envelope
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/categories/{id} [delete]
func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.services.categories.Delete(r.Context(), rid, id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Category deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
