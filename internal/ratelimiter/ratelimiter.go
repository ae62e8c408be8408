package ratelimiter

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Middleware limits requests per client IP. Requests over the limit are
// handed to onLimit, or get httprate's plain 429 when onLimit is nil.
func Middleware(cfg Config, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	if !cfg.Enabled || cfg.RequestsPerTimeFrame <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
	}
	if onLimit != nil {
		opts = append(opts, httprate.WithLimitHandler(onLimit))
	}

	return httprate.Limit(cfg.RequestsPerTimeFrame, cfg.TimeFrame, opts...)
}
