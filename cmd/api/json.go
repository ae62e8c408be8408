package main

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

const maxBodyBytes = 10 << 20

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func writeJson(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJson(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(data)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func writeJsonError(w http.ResponseWriter, status int, message string) error {
	return writeJson(w, status, envelope{Success: false, Message: message})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	return writeJson(w, status, envelope{Success: true, Data: data})
}

func (app *application) messageResponse(w http.ResponseWriter, status int, message string, data any) error {
	return writeJson(w, status, envelope{Success: true, Message: message, Data: data})
}

// listResponse mirrors the {success, count, data} shape list endpoints return.
func listResponse[T any](w http.ResponseWriter, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return writeJson(w, http.StatusOK, envelope{Success: true, Count: &n, Data: items})
}
