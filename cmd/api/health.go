package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/notify"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    float64           `json:"uptime"`
	Services  map[string]string `json:"services"`
}

type IntegrationsResponse struct {
	Success  bool                  `json:"success"`
	Email    notify.EmailStatus    `json:"email"`
	WhatsApp notify.WhatsAppStatus `json:"whatsapp"`
}

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := app.db.Ping(ctx); err != nil {
		app.logger.Warnw("database ping failed", "error", err)
		dbStatus = "error"
	}

	queueStatus := "inline"
	if app.config.rabbitMQ.URL != "" {
		queueStatus = "ok"
	}

	response := HealthResponse{
		Status:    "OK",
		Timestamp: time.Now(),
		Uptime:    time.Since(app.startedAt).Seconds(),
		Services: map[string]string{
			"database": dbStatus,
			"queue":    queueStatus,
		},
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		response.Status = "DEGRADED"
		status = http.StatusServiceUnavailable
	}

	if err := writeJson(w, status, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// integrationsHandler godoc
//
//	@Summary		Notification integrations
//	@Description	Reports whether email and WhatsApp delivery are configured
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	IntegrationsResponse
//	@Router			/health/integrations [get]
func (app *application) integrationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := notify.CheckIntegrations(ctx, app.email, app.whatsapp)

	response := IntegrationsResponse{
		Success:  true,
		Email:    status.Email,
		WhatsApp: status.WhatsApp,
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
