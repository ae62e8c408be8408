package main

import (
	"net/http"

	"github.com/Zyntrix-company/Qruzine/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// loginHandler godoc
//
//	@Summary		Log in
//	@Description	Exchanges staff credentials for a JWT
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	service.LoginResult
//	@Failure		400		{object}	envelope
//	@Failure		401		{object}	envelope
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.services.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// meHandler godoc
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	domain.User
//	@Failure	401	{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/auth/me [get]
func (app *application) meHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := service.ParseID("userID", claimsFrom(r).UserID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	user, err := app.services.auth.Me(r.Context(), userID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// changePasswordHandler godoc
//
//	@Summary	Change password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ChangePasswordRequest	true	"Passwords"
//	@Success	200		{object}	envelope
//	@Failure	400		{object}	envelope
//	@Failure	401		{object}	envelope
//	@Security	ApiKeyAuth
//	@Router		/auth/password [put]
func (app *application) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userID, err := service.ParseID("userID", claimsFrom(r).UserID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.services.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.messageResponse(w, http.StatusOK, "Password updated successfully", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
