package main

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/metrics"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var defaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

func (app *application) allowedOrigin(origin string) bool {
	return slices.Contains(app.config.frontendURLs, origin)
}

// corsMiddleware rejects browser requests from unknown origins outright and
// lets go-chi/cors answer preflights for the rest. Requests without an Origin
// header (curl, health probes, mobile apps) pass through.
func (app *application) corsMiddleware() func(http.Handler) http.Handler {
	handler := cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return app.allowedOrigin(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization", "Cache-Control"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return func(next http.Handler) http.Handler {
		allowed := handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !app.allowedOrigin(origin) {
				app.logger.Warnw("cors blocked", "origin", origin, "path", r.URL.Path)
				_ = writeJson(w, http.StatusForbidden, map[string]string{
					"message": fmt.Sprintf("CORS blocked for origin: %s", origin),
				})
				return
			}
			allowed.ServeHTTP(w, r)
		})
	}
}

func (app *application) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveRequest(route, r.Method, status, time.Since(start))
	})
}

// recoverer turns a panic into the JSON 500 every other failure gets.
func (app *application) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			app.logger.Errorw("panic recovered", "panic", rvr, "stack", string(debug.Stack()))
			app.internalServerError(w, r, fmt.Errorf("panic: %v", rvr))
		}()

		next.ServeHTTP(w, r)
	})
}

// noListing hides directory indexes of a file server.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			_ = writeJson(w, http.StatusNotFound, map[string]string{"message": "Route not found"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) authTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			app.unauthorizedResponse(w, r, "No token, authorization denied")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			app.unauthorizedResponse(w, r, "Authorization header is malformed")
			return
		}

		claims, err := app.jwt.ValidateToken(token)
		if err != nil {
			app.unauthorizedResponse(w, r, "Token is not valid")
			return
		}

		// role and restaurant come from the stored account, not the token
		current, err := app.services.auth.Authenticate(r.Context(), claims)
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			app.unauthorizedResponse(w, r, "Token is not valid")
			return
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r, "Account is disabled")
			return
		case err != nil:
			app.internalServerError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), current)))
	})
}

func (app *application) requireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.FromContext(r.Context())
			if !ok {
				app.unauthorizedResponse(w, r, "No token, authorization denied")
				return
			}
			if !slices.Contains(roles, claims.Role) {
				app.forbiddenResponse(w, r, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFrom(r *http.Request) *auth.Claims {
	claims, _ := auth.FromContext(r.Context())
	return claims
}

// restaurantScope resolves which restaurant a staff request acts on: the
// subadmin's own restaurant, or the restaurantID query parameter for admins.
func (app *application) restaurantScope(r *http.Request) (primitive.ObjectID, error) {
	claims := claimsFrom(r)
	if claims == nil {
		return primitive.NilObjectID, fmt.Errorf("missing credentials: %w", domain.ErrUnauthorized)
	}

	if claims.Role == domain.RoleSubadmin {
		if claims.RestaurantID == "" {
			return primitive.NilObjectID, fmt.Errorf("no restaurant assigned: %w", domain.ErrForbidden)
		}
		return service.ParseID("restaurantID", claims.RestaurantID)
	}

	rid := r.URL.Query().Get("restaurantID")
	if rid == "" {
		return primitive.NilObjectID, fmt.Errorf("restaurantID is required: %w", domain.ErrInvalidInput)
	}
	return service.ParseID("restaurantID", rid)
}

// optionalRestaurantScope is restaurantScope for endpoints where admins may
// omit the restaurant to see everything.
func (app *application) optionalRestaurantScope(r *http.Request) (*primitive.ObjectID, error) {
	claims := claimsFrom(r)
	if claims != nil && claims.Role == domain.RoleAdmin && r.URL.Query().Get("restaurantID") == "" {
		return nil, nil
	}
	rid, err := app.restaurantScope(r)
	if err != nil {
		return nil, err
	}
	return &rid, nil
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	return service.ParseID(name, chi.URLParam(r, name))
}
