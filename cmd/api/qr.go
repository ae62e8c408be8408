package main

import (
	"net/http"
	"strconv"

	"github.com/Zyntrix-company/Qruzine/internal/service"
)

// resolveQRCodeHandler godoc
//
//	@Summary		Resolve a scanned QR code
//	@Description	Maps a QR code to its restaurant and table so the guest app can load the menu
//	@Tags			qr
//	@Produce		json
//	@Param			qrID	path		string	true	"QR code ID"
//	@Success		200		{object}	service.ResolvedQRCode
//	@Failure		404		{object}	envelope
//	@Router			/qr/resolve/{qrID} [get]
func (app *application) resolveQRCodeHandler(w http.ResponseWriter, r *http.Request) {
	qrID, err := pathID(r, "qrID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	resolved, err := app.services.qrCodes.Resolve(r.Context(), qrID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, resolved); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listQRCodesHandler godoc
//
//	@Summary	List QR codes
//	@Tags		qr
//	@Produce	json
//	@Success	200	{array}	service.QRCodeView
//	@Security	ApiKeyAuth
//	@Router		/qr [get]
func (app *application) listQRCodesHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	codes, err := app.services.qrCodes.List(r.Context(), rid)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := listResponse(w, codes); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getQRCodeHandler godoc
//
//	@Summary	Get QR code
//	@Tags		qr
//	@Produce	json
//	@Param		id	path		string	true	"QR code ID"
//	@Success	200	{object}	service.QRCodeView
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/qr/{id} [get]
func (app *application) getQRCodeHandler(w http.ResponseWriter, r *http.Request) {
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

	qr, err := app.services.qrCodes.Get(r.Context(), rid, id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, qr); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createQRCodeHandler godoc
//
//	@Summary	Create QR code for a table
//	@Tags		qr
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.QRCodeInput	true	"Table"
//	@Success	201		{object}	service.QRCodeView
//	@Failure	400		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/qr [post]
func (app *application) createQRCodeHandler(w http.ResponseWriter, r *http.Request) {
	rid, err := app.restaurantScope(r)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var req service.QRCodeInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	qr, err := app.services.qrCodes.Create(r.Context(), rid, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusCreated, "QR code created successfully", qr); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateQRCodeHandler godoc
//
//	@Summary	Update QR code
//	@Tags		qr
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"QR code ID"
//	@Param		request	body		service.QRCodeInput	true	"Fields to change"
//	@Success	200		{object}	service.QRCodeView
//	@Failure	404		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/qr/{id} [put]
func (app *application) updateQRCodeHandler(w http.ResponseWriter, r *http.Request) {
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

	var req service.QRCodeInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	qr, err := app.services.qrCodes.Update(r.Context(), rid, id, req)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "QR code updated successfully", qr); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteQRCodeHandler godoc
//
//	@Summary	Delete QR code
//	@Tags		qr
//	@Produce	json
//	@Param		id	path		string	true	"QR code ID"
//	@Success	200	{object}	envelope
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/qr/{id} [delete]
func (app *application) deleteQRCodeHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.services.qrCodes.Delete(r.Context(), rid, id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "QR code deleted successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// qrCodeImageHandler godoc
//
//	@Summary	QR code PNG
//	@Tags		qr
//	@Produce	png
//	@Param		id		path	string	true	"QR code ID"
//	@Param		size	query	int		false	"Edge length in pixels (128-2048)"
//	@Success	200
//	@Failure	404	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/qr/{id}/image [get]
func (app *application) qrCodeImageHandler(w http.ResponseWriter, r *http.Request) {
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

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	png, err := app.services.qrCodes.Image(r.Context(), rid, id, size)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="qr-`+id.Hex()+`.png"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		app.logger.Warnw("failed to write qr image", "qr_id", id.Hex(), "error", err)
	}
}
