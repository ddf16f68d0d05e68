package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/config"
	"github.com/iliyamo/studyroom-seat-booking/internal/database"
	"github.com/iliyamo/studyroom-seat-booking/internal/handler"
	"github.com/iliyamo/studyroom-seat-booking/internal/jobs"
	"github.com/iliyamo/studyroom-seat-booking/internal/logging"
	"github.com/iliyamo/studyroom-seat-booking/internal/middleware"
	"github.com/iliyamo/studyroom-seat-booking/internal/notify"
	"github.com/iliyamo/studyroom-seat-booking/internal/payment"
	"github.com/iliyamo/studyroom-seat-booking/internal/queue"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
	"github.com/iliyamo/studyroom-seat-booking/internal/router"
	"github.com/iliyamo/studyroom-seat-booking/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config
	log := logging.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Storage ----
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("migrate schema")
	}

	customers := repository.NewCustomerRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db, customers, seats)
	admins := repository.NewAdminRepo(db)
	if err := seats.SeedDefault(ctx); err != nil {
		log.WithError(err).Fatal("seed seats")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unreachable: rate limiting and seat cache disabled")
	} else {
		defer rdb.Close()
	}

	// ---- Notifications ----
	smtpCfg := config.LoadSMTPConfig()
	mailer := notify.NewMailer(notify.NewTransport(smtpCfg, log), smtpCfg, cfg.FrontendURL)
	notifier := notify.NewService(bookings, notify.NewIDCardRenderer(smtpCfg.Business), mailer, log)

	publisher := queue.NewPublisher(cfg.RabbitURL)
	defer publisher.Close()
	go func() {
		if err := queue.StartBookingConsumer(ctx, cfg.RabbitURL, notifier.HandleBookingConfirmed, log); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("booking consumer stopped")
		}
	}()

	// ---- Services ----
	auth := service.NewAuthService(admins, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost, log)
	if err := auth.Bootstrap(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash); err != nil {
		log.WithError(err).Fatal("bootstrap admin")
	}
	bookingSvc := service.NewBookingService(bookings, seats, publisher, log)
	adminSvc := service.NewAdminService(service.AdminStores{
		Customers: customers,
		Seats:     seats,
		Bookings:  bookings,
		Expenses:  repository.NewExpenseRepo(db),
		Cleaner:   repository.NewCleanupRepo(db),
		Stats:     repository.NewStatsRepo(db),
	}, log)
	gateway := payment.NewGateway(config.LoadPaymentConfig(), nil, log)
	if !gateway.Configured() {
		log.Warn("payment gateway credentials missing: orders are stubbed")
	}
	checkout := service.NewCheckoutService(gateway, log)

	// ---- Background jobs ----
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.WithError(err).WithField("tz", cfg.Timezone).Warn("unknown timezone, using UTC")
		loc = time.UTC
	}
	sweeper := jobs.NewSweeper(bookings, notifier, cfg.ExpiryReminderDays, loc, log)
	var worker *jobs.Worker
	if rdb != nil {
		worker = jobs.NewWorker(config.AsynqRedisOpt(), sweeper, cfg.ExpirySweepCron, loc, log)
		if err := worker.Start(); err != nil {
			log.WithError(err).Error("expiry worker not started")
			worker = nil
		}
	}

	// ---- HTTP ----
	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.BodyLimit("12M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(log))
	e.Static("/uploads", cfg.UploadDir)

	cacheCfg := config.LoadCacheConfig()
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log)
	seatCache := middleware.NewRedisCache(cacheCfg, rdb)

	adminHandler := handler.NewAdminHandler(adminSvc, bookingSvc, log)
	adminHandler.SeatsChanged = func(ctx context.Context) {
		if err := middleware.PurgeCache(ctx, rdb, cacheCfg.Prefix); err != nil {
			log.WithError(err).Warn("purge seat cache")
		}
	}

	router.RegisterRoutes(e, handler.NewHealthHandler(db))
	router.RegisterPublic(e,
		handler.NewBookingHandler(bookingSvc, seats, log),
		handler.NewPublicHandler(checkout, notifier, cfg.UploadDir, log),
		limit, seatCache)
	router.RegisterAdmin(e, handler.NewAuthHandler(auth, log), adminHandler, cfg.JWTSecret, limit)

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
}
