package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	_ "fx_payments/docs" // This will be auto-generated
	"fx_payments/internal/adapter/http/handlers"
	"fx_payments/internal/adapter/http/middleware"
	"fx_payments/internal/adapter/persistence/repository"
	"fx_payments/internal/infrastructure/config"
	"fx_payments/internal/infrastructure/fx"
	"fx_payments/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server and block until SIGINT/SIGTERM.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	paymentUseCase, err := buildPaymentUseCase(cfg)
	if err != nil {
		log.Fatalf("Failed to build payment use case: %v", err)
	}
	router := NewRouter(paymentUseCase)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[server] listening addr=%s fx_base_url=%s", srv.Addr, cfg.FX.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err.Error())
		}
	}()

	<-ctx.Done()
	log.Printf("[server] shutting down timeout=%s", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] forced shutdown err=%v", err)
	}
}

// NewRouter wires middlewares and every public route around the given use case.
func NewRouter(paymentUseCase usecase.IPaymentUseCase) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.Health)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler)
	return router
}

func buildPaymentUseCase(cfg config.Config) (*usecase.PaymentUseCase, error) {
	fxClient, err := fx.NewTwirpFXClient(fx.Options{
		BaseURL:       cfg.FX.BaseURL,
		Timeout:       cfg.FX.Timeout,
		MaxAttempts:   cfg.FX.MaxAttempts,
		Backoff:       cfg.FX.Backoff,
		MaxBackoff:    cfg.FX.MaxBackoff,
		IncludeAmount: cfg.FX.IncludeAmount,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[fx][client] configured timeout=%s attempts=%d max_quote_duration=%s", cfg.FX.Timeout, cfg.FX.MaxAttempts, cfg.FX.MaxQuoteDuration())

	paymentRepo := repository.NewPaymentMemoryRepository()
	return usecase.NewPaymentUseCase(paymentRepo, fxClient), nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.CORS())
}
