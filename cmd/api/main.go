package main

import (
	"context"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/env"
	"github.com/Zyntrix-company/Qruzine/internal/media"
	"github.com/Zyntrix-company/Qruzine/internal/notify"
	"github.com/Zyntrix-company/Qruzine/internal/parser"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/ratelimiter"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/Zyntrix-company/Qruzine/internal/worker"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

//	@title			Qruzine
//	@description	Restaurant QR-code ordering API
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.email	support@qruzine.app

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath					/api
//
// @securityDefinitions.apiKey	ApiKeyAuth
// @in							header
// @name						Authorization
// @description				Bearer token from /auth/login
func main() {
	_ = godotenv.Load()

	port := env.GetString("PORT", "5000")
	cfg := config{
		addr:          ":" + port,
		apiURL:        env.GetString("EXTERNAL_URL", "localhost:"+port),
		env:           env.GetString("NODE_ENV", env.GetString("ENV", "development")),
		frontendURLs:  env.GetList("FRONTEND_URL", defaultOrigins),
		storageDriver: env.GetString("STORAGE_DRIVER", "mongo"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS", 1000),
			TimeFrame:            env.GetDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGODB_URI", "mongodb://localhost:27017/restaurant-ordering"),
			Database: env.GetString("MONGODB_DATABASE", "restaurant-ordering"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    env.GetDuration("RABBITMQ_RETRY_DELAY", 2*time.Second),
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
		jwt: jwtConfig{
			secret: env.GetString("JWT_SECRET", ""),
			ttl:    env.GetDuration("JWT_TTL", auth.DefaultTokenTTL),
		},
		admin: adminConfig{
			name:     env.GetString("ADMIN_NAME", "Administrator"),
			email:    env.GetString("ADMIN_EMAIL", ""),
			password: env.GetString("ADMIN_PASSWORD", ""),
		},
		upload: uploadConfig{
			driver:    env.GetString("UPLOAD_DRIVER", "local"),
			dir:       env.GetString("UPLOAD_DIR", "./uploads"),
			publicURL: env.GetString("PUBLIC_URL", "http://localhost:"+port),
			s3: media.S3Config{
				Bucket:    env.GetString("S3_BUCKET", ""),
				Region:    env.GetString("S3_REGION", "us-east-1"),
				Endpoint:  env.GetString("S3_ENDPOINT", ""),
				PublicURL: env.GetString("S3_PUBLIC_URL", ""),
			},
		},
		smtp: notify.SMTPConfig{
			Host:     env.GetString("SMTP_HOST", ""),
			Port:     env.GetInt("SMTP_PORT", 587),
			Username: env.GetString("SMTP_USER", ""),
			Password: env.GetString("SMTP_PASS", ""),
			From:     env.GetString("SMTP_FROM", ""),
		},
		twilio: notify.TwilioConfig{
			AccountSID: env.GetString("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  env.GetString("TWILIO_AUTH_TOKEN", ""),
			From:       env.GetString("TWILIO_WHATSAPP_FROM", ""),
		},
		googleCreds: env.GetString("GOOGLE_CREDENTIALS_PATH", ""),
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	ctx := context.Background()

	// storage
	repos, db, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to open storage", "driver", cfg.storageDriver, "error", err)
	}

	// broker
	brokerCfg := queue.Config{
		URL:           cfg.rabbitMQ.URL,
		MaxRetries:    cfg.rabbitMQ.MaxRetries,
		RetryDelay:    cfg.rabbitMQ.RetryDelay,
		PrefetchCount: cfg.rabbitMQ.PrefetchCount,
	}
	var broker queue.Broker
	if cfg.rabbitMQ.URL == "" {
		logger.Warn("RABBITMQ_URL not set, handling queue messages in-process")
		broker = queue.NewInlineBroker(brokerCfg)
	} else {
		rabbit, err := queue.NewRabbitMQBroker(brokerCfg)
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		logger.Info("connected to RabbitMQ")
		broker = rabbit
	}

	// auth
	jwtManager, err := auth.NewJWTManager(cfg.jwt.secret, cfg.jwt.ttl)
	if err != nil {
		logger.Fatalw("failed to configure JWT", "error", err)
	}

	// media
	var store media.Store
	switch cfg.upload.driver {
	case "s3":
		store, err = media.NewS3Store(ctx, cfg.upload.s3)
	default:
		store, err = media.NewLocalStore(cfg.upload.dir, cfg.upload.publicURL)
	}
	if err != nil {
		logger.Fatalw("failed to configure image storage", "driver", cfg.upload.driver, "error", err)
	}

	// menu import
	var menuParser service.MenuParser
	if cfg.googleCreds != "" {
		parserCfg, err := parser.ConfigFromFile(cfg.googleCreds)
		if err != nil {
			logger.Fatalw("failed to read Google credentials", "error", err)
		}

		sheetsParser, err := parser.New(ctx, parserCfg)
		if err != nil {
			logger.Fatalw("failed to create Google Sheets parser", "error", err)
		}
		menuParser = sheetsParser
		logger.Info("Google Sheets parser initialized")
	} else {
		logger.Warn("Google credentials not provided, menu import is disabled")
	}

	// notifications
	email := notify.NewEmailNotifier(cfg.smtp)
	whatsapp := notify.NewWhatsAppNotifier(cfg.twilio)

	authService := service.NewAuthService(repos.users, jwtManager, logger)
	importService := service.NewImportService(
		repos.importTasks,
		repos.menuItems,
		repos.restaurants,
		menuParser,
		broker,
		repos.tx,
		logger,
	)
	notificationService := service.NewNotificationService(logger, email, whatsapp)

	app := &application{
		config:    cfg,
		logger:    logger,
		startedAt: time.Now(),
		db:        db,
		broker:    broker,
		jwt:       jwtManager,
		uploader:  media.NewUploader(store),
		email:     email,
		whatsapp:  whatsapp,
		services: services{
			auth:        authService,
			restaurants: service.NewRestaurantService(repos.restaurants, logger),
			users:       service.NewUserService(repos.users, repos.restaurants, logger),
			menu:        service.NewMenuService(repos.menuItems, repos.categories, repos.restaurants, repos.qrCodes, logger),
			categories:  service.NewCategoryService(repos.categories, logger),
			qrCodes:     service.NewQRCodeService(repos.qrCodes, repos.restaurants, cfg.frontendURLs[0], logger),
			banners:     service.NewBannerService(repos.banners, logger),
			orders: service.NewOrderService(
				repos.orders,
				repos.orderAudits,
				repos.menuItems,
				repos.restaurants,
				repos.qrCodes,
				repos.tx,
				broker,
				logger,
			),
			imports: importService,
			stats:   service.NewStatsService(repos.restaurants, repos.users, repos.orders, repos.menuItems, logger),
		},
		workers: []backgroundWorker{
			worker.NewOrderNotificationWorker(notificationService, broker, logger),
			worker.NewMenuImportWorker(importService, broker, logger),
		},
	}

	seedCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	if err := authService.SeedAdmin(seedCtx, cfg.admin.name, cfg.admin.email, cfg.admin.password); err != nil {
		logger.Errorw("failed to seed admin", "error", err)
	}
	cancel()

	// startup integration checks are informational only
	go func() {
		checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		status := notify.CheckIntegrations(checkCtx, email, whatsapp)
		if status.Email.Configured && status.Email.Error == "" {
			logger.Info("email transport verified")
		} else {
			logger.Warnw("email transport not available", "configured", status.Email.Configured, "error", status.Email.Error)
		}
		logger.Infow("whatsapp integration", "configured", status.WhatsApp.Configured)
	}()

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
