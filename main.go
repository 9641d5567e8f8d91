package main

import (
	"context"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/studiobook/studio-booking/config"
	"github.com/studiobook/studio-booking/internal/clock"
	"github.com/studiobook/studio-booking/internal/consumer"
	"github.com/studiobook/studio-booking/internal/handler"
	"github.com/studiobook/studio-booking/internal/middleware"
	"github.com/studiobook/studio-booking/internal/notify"
	"github.com/studiobook/studio-booking/internal/repository"
	"github.com/studiobook/studio-booking/internal/service"
	"github.com/studiobook/studio-booking/internal/sweeper"
	"github.com/studiobook/studio-booking/pkg/database"
	"github.com/studiobook/studio-booking/pkg/logger"
	"github.com/studiobook/studio-booking/pkg/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)
	defer log.Sync()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)

	// Collaborators: broker-backed when RabbitMQ is configured, logging
	// no-ops otherwise. Their failures never fail a booking transaction.
	notifier := notify.NewNoopNotifier(log)
	calendar := notify.NewNoopCalendar()
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer pub.Close()
		notifier = notify.NewAMQPNotifier(pub, log)
		calendar = notify.NewAMQPCalendar(pub, log)

		// Package purchases approved upstream flow in over the same broker.
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatal("failed to open RabbitMQ consumer", zap.Error(err))
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewPackageConsumer(packageRepo, log).Start(msgs)
	}

	clk := clock.Real()

	// Services
	bookingSvc := service.NewBookingService(
		bookingRepo, packageRepo, customerRepo, teacherRepo,
		notifier, calendar, clk, log, cfg.BookingAdvanceDays,
	)
	packageSvc := service.NewPackageService(packageRepo, bookingRepo, clk, log)
	availabilitySvc := service.NewAvailabilityService(bookingRepo)

	// Background sweep: elapsed sessions and lapsed packages.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sw := sweeper.New(bookingSvc, packageSvc, cfg.SweepInterval, log)
	sw.Start(ctx)
	defer sw.Stop()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(log)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "studio-booking"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewPackageHandler(packageSvc).RegisterRoutes(e)
	handler.NewAvailabilityHandler(availabilitySvc).RegisterRoutes(e)

	log.Info("studio booking service starting", zap.String("port", cfg.ServerPort))
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
