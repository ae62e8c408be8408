package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/media"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/go-playground/validator/v10"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	body := map[string]any{"message": "Something went wrong!", "error": struct{}{}}
	if app.config.env == "development" {
		body["error"] = err.Error()
	}
	_ = writeJson(w, http.StatusInternalServerError, body)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusBadRequest, validationMessage(err))
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusNotFound, capitalize(err.Error()))
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusConflict, capitalize(err.Error()))
}

func (app *application) unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "reason", message)

	_ = writeJsonError(w, http.StatusUnauthorized, message)
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path, "reason", message)

	_ = writeJsonError(w, http.StatusForbidden, message)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	_ = writeJsonError(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
}

// errorResponse maps service errors onto HTTP statuses.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, media.ErrNotImage),
		errors.Is(err, media.ErrUnsupportedImage),
		errors.Is(err, media.ErrTooLarge),
		errors.Is(err, media.ErrInvalidPublicID):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, domain.ErrConflict):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrUnauthorized):
		app.unauthorizedResponse(w, r, capitalize(err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		app.forbiddenResponse(w, r, capitalize(err.Error()))
	case errors.Is(err, service.ErrImportDisabled):
		app.logger.Warnw("menu import unavailable", "path", r.URL.Path)
		_ = writeJsonError(w, http.StatusServiceUnavailable, capitalize(err.Error()))
	default:
		app.internalServerError(w, r, err)
	}
}

// validationMessage renders validator errors as "field is required"-style text.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return capitalize(err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
