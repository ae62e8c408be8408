package main

import "net/http"

type CreateImportRequest struct {
	SpreadsheetID string `json:"spreadsheetID" validate:"required"`
}

// createImportHandler godoc
//
//	@Summary		Import menu from Google Sheets
//	@Description	Queues a task that reads the spreadsheet and adds its rows as menu items
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateImportRequest	true	"Spreadsheet"
//	@Success		202		{object}	domain.MenuImportTask
//	@Failure		400		{object}	envelope
//	@Failure		503		{object}	envelope
//	@Security		ApiKeyAuth
//	@Router			/menu/import [post]
func (app *application) createImportHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var req CreateImportRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	task, err := app.services.imports.CreateTask(r.Context(), rid, req.SpreadsheetID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusAccepted, "Import queued", task); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getImportHandler godoc
//
//	@Summary	Menu import status
//	@Tags		menu
//	@Produce	json
//	@Param		taskID	path		string	true	"Task ID"
//	@Success	200		{object}	domain.MenuImportTask
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/menu/import/{taskID} [get]
func (app *application) getImportHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	taskID, err := pathID(r, "taskID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	task, err := app.services.imports.GetTask(r.Context(), rid, taskID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
