// Package server boots the application: configuration, stores, services,
// routes, and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barecheradouane2/ShoppingStorev1/app/controllers"
	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/app/repositories"
	"github.com/barecheradouane2/ShoppingStorev1/app/routes"
	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/config"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/cache"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/database"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/event"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/metrics"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/middleware"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/reqid"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/router"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/storage"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/workerpool"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/ws"
)

const shutdownGrace = 15 * time.Second

// Run boots every subsystem and serves until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := database.Disconnect(ctx); err != nil {
			logger.Warn("mongo disconnect", "error", err)
		}
	}()

	// Redis is an optimization, not a dependency: a failed connection
	// degrades caches to pass-through.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	if err := storage.Connect(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	// Optional persistent log sink alongside stdout.
	var logSink *logger.MongoHandler
	if col := config.MongoLogCollection(); col != "" {
		logSink = logger.NewMongoHandler(database.Collection(col))
		logger.AttachMongoSink(logSink)
		defer logSink.Close()
	}

	pool := workerpool.New(4)
	defer pool.Shutdown()

	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()
	shippingRepo := repositories.NewShippingRepository()
	expenseRepo := repositories.NewExpenseRepository()
	categoryRepo := repositories.NewCategoryRepository()
	userRepo := repositories.NewUserRepository()

	inventory := services.NewInventoryService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, shippingRepo, productRepo, inventory)
	productSvc := services.NewProductService(productRepo, expenseRepo, inventory, pool)
	shippingSvc := services.NewShippingService(shippingRepo)
	expenseSvc := services.NewExpenseService(expenseRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	authSvc := services.NewAuthService(userRepo)

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Close()
	wireOrderFeed(hub)

	// Metrics and request id sit outermost so every request is counted and
	// tagged; Recovery runs inside Logger so a panic entry still carries
	// the request-scoped logger from the context.
	r := router.New()
	r.Use(metrics.Middleware(), reqid.Middleware(), middleware.Logger,
		middleware.Recovery, middleware.CORS(middleware.DefaultCORSOptions()))

	routes.RegisterAPI(r, routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc),
		Categories: controllers.NewCategoryController(categorySvc),
		Products:   controllers.NewProductController(productSvc),
		Shippings:  controllers.NewShippingController(shippingSvc),
		Expenses:   controllers.NewExpenseController(expenseSvc),
		Orders:     controllers.NewOrderController(orderSvc),
	}, hub)

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/health", healthHandler)
	r.Static("/static", config.StorageLocalRoot())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	event.Flush()
	return nil
}

// wireOrderFeed forwards order lifecycle events to websocket clients.
func wireOrderFeed(hub *ws.Hub) {
	forward := func(name string) func(payload interface{}) {
		return func(payload interface{}) {
			if order, ok := payload.(*models.Order); ok {
				hub.Broadcast(name, order)
				return
			}
			hub.Broadcast(name, payload)
		}
	}
	event.Listen(event.OrderCreated, forward(event.OrderCreated))
	event.Listen(event.OrderUpdated, forward(event.OrderUpdated))
	event.Listen(event.OrderDeleted, forward(event.OrderDeleted))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

// NewRouter builds the full route table without starting the listener,
// for route inspection commands.
func NewRouter() *router.Router {
	r := router.New()
	hub := ws.NewHub()

	inventory := services.NewInventoryService(nil)
	routes.RegisterAPI(r, routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(nil)),
		Categories: controllers.NewCategoryController(services.NewCategoryService(nil)),
		Products:   controllers.NewProductController(services.NewProductService(nil, nil, inventory, nil)),
		Shippings:  controllers.NewShippingController(services.NewShippingService(nil)),
		Expenses:   controllers.NewExpenseController(services.NewExpenseService(nil)),
		Orders:     controllers.NewOrderController(services.NewOrderService(nil, nil, nil, inventory)),
	}, hub)
	return r
}
