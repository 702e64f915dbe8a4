package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/config"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/consumer"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/handler"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/middleware"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/repository"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/pkg/cache"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/pkg/database"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	db := database.NewDB(cfg.DBDriver, cfg.DSN())

	// RabbitMQ is optional; without it bookings still commit, nothing is published
	var publisher service.Publisher
	var mqPublisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		mqPublisher = p
		publisher = p
	} else {
		log.Println("[Main] RABBITMQ_URL not set, integration events disabled")
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	tierRepo := repository.NewTierRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, tierRepo, service.BookingOptions{
		DeferredPayment: cfg.DeferredPayment(),
		CumulativeLimit: cfg.CumulativeLimit,
		Publisher:       publisher,
	})
	eventSvc := service.NewEventService(eventRepo, tierRepo, publisher)

	// Payment results only matter when bookings start out pending
	var mqConsumer *rabbitmq.Consumer
	var consumerDone <-chan struct{}
	if cfg.DeferredPayment() {
		if cfg.RabbitURL == "" {
			log.Fatal("PAYMENT_CONFIRMATION=deferred requires RABBITMQ_URL")
		}
		c, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.PaymentQueue, rabbitmq.PaymentBindingKey)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		msgs, err := c.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		mqConsumer = c
		consumerDone = consumer.NewPaymentConsumer(bookingSvc).Start(msgs)
	}

	var bookMw []echo.MiddlewareFunc
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		limiter := middleware.NewRateLimiter(rdb, "booking", cfg.RateLimitBookings, cfg.RateLimitWindow)
		bookMw = append(bookMw, limiter.Middleware())
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s request_id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "eventhive"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.JWTAuth(cfg.JWTSecret)

	events := e.Group("/api/v1/events")
	organizerEvents := e.Group("/api/v1/organizer/events", auth, middleware.RequireRole(middleware.RoleOrganizer))
	handler.NewEventHandler(eventSvc).RegisterRoutes(events, organizerEvents)

	bookings := e.Group("/api/v1/bookings", auth, middleware.RequireRole(middleware.RoleUser))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(bookings, bookMw...)

	go func() {
		log.Printf("EventHive starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[Main] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[Main] server shutdown: %v", err)
	}

	if mqConsumer != nil {
		mqConsumer.Close()
		select {
		case <-consumerDone:
		case <-ctx.Done():
			log.Println("[Main] payment consumer did not stop in time")
		}
	}
	if mqPublisher != nil {
		mqPublisher.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
