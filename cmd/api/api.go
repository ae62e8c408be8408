package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zyntrix-company/Qruzine/docs"
	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/media"
	"github.com/Zyntrix-company/Qruzine/internal/notify"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/ratelimiter"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config    config
	logger    *zap.SugaredLogger
	startedAt time.Time
	db        database
	broker    queue.Broker
	jwt       *auth.JWTManager
	uploader  *media.Uploader
	email     *notify.EmailNotifier
	whatsapp  *notify.WhatsAppNotifier
	services  services
	workers   []backgroundWorker
}

// database is the part of a storage backend the server manages directly.
type database interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type backgroundWorker interface {
	Start() error
	Stop()
}

type services struct {
	auth        *service.AuthService
	restaurants *service.RestaurantService
	users       *service.UserService
	menu        *service.MenuService
	categories  *service.CategoryService
	qrCodes     *service.QRCodeService
	banners     *service.BannerService
	orders      *service.OrderService
	imports     *service.ImportService
	stats       *service.StatsService
}

type config struct {
	addr          string
	env           string
	apiURL        string
	frontendURLs  []string
	storageDriver string
	rateLimiter   ratelimiter.Config
	mongo         mongoConfig
	rabbitMQ      rabbitMQConfig
	jwt           jwtConfig
	admin         adminConfig
	upload        uploadConfig
	smtp          notify.SMTPConfig
	twilio        notify.TwilioConfig
	googleCreds   string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type jwtConfig struct {
	secret string
	ttl    time.Duration
}

type adminConfig struct {
	name     string
	email    string
	password string
}

type uploadConfig struct {
	driver    string
	dir       string
	publicURL string
	s3        media.S3Config
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(app.recoverer)
	r.Use(app.metricsMiddleware)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"))
	r.Use(app.corsMiddleware())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJson(w, http.StatusNotFound, map[string]string{"message": "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJson(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
	})

	r.Handle("/metrics", promhttp.Handler())

	if app.config.upload.driver != "s3" {
		fs := http.FileServer(http.Dir(app.config.upload.dir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", noListing(fs)))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(ratelimiter.Middleware(app.config.rateLimiter, app.rateLimitExceededResponse))

		r.Get("/health", app.healthCheckHandler)
		r.Get("/health/integrations", app.integrationsHandler)

		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/api/swagger/doc.json")))

		staff := []string{domain.RoleAdmin, domain.RoleSubadmin}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", app.loginHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.authTokenMiddleware)
				r.Get("/me", app.meHandler)
				r.Put("/password", app.changePasswordHandler)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.authTokenMiddleware, app.requireRole(domain.RoleAdmin))

			r.Get("/stats", app.adminStatsHandler)

			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", app.listRestaurantsHandler)
				r.Post("/", app.createRestaurantHandler)
				r.Get("/{id}", app.getRestaurantHandler)
				r.Put("/{id}", app.updateRestaurantHandler)
				r.Delete("/{id}", app.deleteRestaurantHandler)
			})

			r.Route("/subadmins", func(r chi.Router) {
				r.Get("/", app.listSubadminsHandler)
				r.Post("/", app.createSubadminHandler)
				r.Get("/{id}", app.getSubadminHandler)
				r.Put("/{id}", app.updateSubadminHandler)
				r.Delete("/{id}", app.deleteSubadminHandler)
			})
		})

		r.Route("/subadmin", func(r chi.Router) {
			r.Use(app.authTokenMiddleware, app.requireRole(domain.RoleSubadmin))

			r.Get("/profile", app.subadminProfileHandler)
			r.Get("/restaurant", app.subadminRestaurantHandler)
			r.Put("/restaurant", app.subadminUpdateRestaurantHandler)
			r.Get("/dashboard", app.subadminDashboardHandler)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/public/{resID}/{qrID}", app.getPublicMenuHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.authTokenMiddleware, app.requireRole(staff...))

				r.Get("/", app.listMenuItemsHandler)
				r.Post("/", app.createMenuItemHandler)
				r.Post("/import", app.createImportHandler)
				r.Get("/import/{taskID}", app.getImportHandler)
				r.Get("/{id}", app.getMenuItemHandler)
				r.Put("/{id}", app.updateMenuItemHandler)
				r.Patch("/{id}/availability", app.setAvailabilityHandler)
				r.Delete("/{id}", app.deleteMenuItemHandler)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/public/{resID}", app.listPublicCategoriesHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.authTokenMiddleware, app.requireRole(staff...))

				r.Get("/", app.listCategoriesHandler)
				r.Post("/", app.createCategoryHandler)
				r.Get("/{id}", app.getCategoryHandler)
				r.Put("/{id}", app.updateCategoryHandler)
				r.Delete("/{id}", app.deleteCategoryHandler)
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(app.authTokenMiddleware, app.requireRole(staff...))

			r.Post("/image", app.uploadImageHandler)
			r.Post("/images", app.uploadImagesHandler)
			r.Delete("/image", app.deleteImageHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", app.placeOrderHandler)
			r.Get("/track/{orderID}", app.trackOrderHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.authTokenMiddleware, app.requireRole(staff...))

				r.Get("/", app.listOrdersHandler)
				r.Get("/{id}", app.getOrderHandler)
				r.Patch("/{id}/status", app.updateOrderStatusHandler)
				r.Get("/{id}/history", app.orderHistoryHandler)
			})
		})

		r.Route("/qr", func(r chi.Router) {
			r.Get("/resolve/{qrID}", app.resolveQRCodeHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.authTokenMiddleware, app.requireRole(staff...))

				r.Get("/", app.listQRCodesHandler)
				r.Post("/", app.createQRCodeHandler)
				r.Get("/{id}", app.getQRCodeHandler)
				r.Put("/{id}", app.updateQRCodeHandler)
				r.Delete("/{id}", app.deleteQRCodeHandler)
				r.Get("/{id}/image", app.qrCodeImageHandler)
			})
		})

		r.Route("/banner", func(r chi.Router) {
			r.Get("/public/{resID}", app.listPublicBannersHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.authTokenMiddleware, app.requireRole(staff...))

				r.Get("/", app.listBannersHandler)
				r.Post("/", app.createBannerHandler)
				r.Get("/{id}", app.getBannerHandler)
				r.Put("/{id}", app.updateBannerHandler)
				r.Delete("/{id}", app.deleteBannerHandler)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Qruzine"
	docs.SwaggerInfo.Description = "Restaurant QR-code ordering API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api"

	// workers
	for _, w := range app.workers {
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to start worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		for _, w := range app.workers {
			w.Stop()
		}

		if app.db != nil {
			if err := app.db.Close(ctx); err != nil {
				app.logger.Errorw("error closing database", "error", err)
			} else {
				app.logger.Info("database connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing broker", "error", err)
			} else {
				app.logger.Info("broker closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
