package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/config"
	"github.com/mshelar/shop-service/internal/handler"
	"github.com/mshelar/shop-service/internal/repository"
	"github.com/mshelar/shop-service/internal/service"
	"github.com/mshelar/shop-service/internal/utils"
	"github.com/mshelar/shop-service/pkg/observability"
	"github.com/mshelar/shop-service/pkg/payment"
	"github.com/mshelar/shop-service/pkg/storage"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	sessionStore := service.NewRedisSessionStore(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	// Image uploads are optional; without a provider URL products keep
	// whatever image value the admin submits.
	var images service.ImageStore
	if cfg.Cloudinary.URL != "" {
		cld, err := storage.NewCloudinary(cfg.Cloudinary.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize image storage: %w", err)
		}
		images = cld
	}

	stripeClient := payment.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.ClientURL)

	sessionService := service.NewSessionService(repos.User, sessionStore, jwtManager, cfg.Security.BCryptCost)
	cartService := service.NewCartService(repos.User, repos.Product)
	couponService := service.NewCouponService(repos.Coupon)
	productService := service.NewProductService(repos.Product, infra.Redis(), images, infra.Logger())
	checkoutService := service.NewCheckoutService(repos.Coupon, repos.Order, couponService, stripeClient, infra.Logger())
	analyticsService := service.NewAnalyticsService(repos.User, repos.Product, repos.Order)

	cookies := handler.NewCookieWriter(
		cfg.Env == "production",
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)
	auth := handler.NewAuthenticator(sessionService)

	authHandler := handler.NewAuthHandler(sessionService, cookies)
	cartHandler := handler.NewCartHandler(cartService)
	couponHandler := handler.NewCouponHandler(couponService)
	productHandler := handler.NewProductHandler(productService)
	paymentHandler := handler.NewPaymentHandler(checkoutService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	router := gin.Default()
	router.Use(otelgin.Middleware("shop-service"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, routeHandlers{
		auth:      auth,
		authH:     authHandler,
		cart:      cartHandler,
		coupon:    couponHandler,
		product:   productHandler,
		payment:   paymentHandler,
		analytics: analyticsHandler,
	}, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

type routeHandlers struct {
	auth      *handler.Authenticator
	authH     *handler.AuthHandler
	cart      *handler.CartHandler
	coupon    *handler.CouponHandler
	product   *handler.ProductHandler
	payment   *handler.PaymentHandler
	analytics *handler.AnalyticsHandler
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h routeHandlers,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	credentialLimit := handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", credentialLimit, h.authH.Signup)
			auth.POST("/login", credentialLimit, h.authH.Login)
			auth.POST("/logout", h.authH.Logout)
			auth.GET("/access-token", h.authH.RefreshAccessToken)
			auth.GET("/profile", h.auth.RequireUser(h.authH.Profile))
		}

		cart := api.Group("/cart")
		{
			cart.GET("", h.auth.RequireUser(h.cart.Get))
			cart.POST("", h.auth.RequireUser(h.cart.Add))
			cart.DELETE("", h.auth.RequireUser(h.cart.Remove))
			cart.DELETE("/:id", h.auth.RequireUser(h.cart.Remove))
			cart.PUT("/:id", h.auth.RequireUser(h.cart.UpdateQuantity))
		}

		coupons := api.Group("/coupons")
		{
			coupons.GET("", h.auth.RequireUser(h.coupon.Get))
			coupons.POST("/validate", h.auth.RequireUser(h.coupon.Validate))
		}

		product := api.Group("/product")
		{
			product.GET("", h.auth.RequireAdmin(h.product.List))
			product.GET("/featured", h.product.Featured)
			product.GET("/recommended", h.product.Recommended)
			product.GET("/category/:category", h.product.ByCategory)
			product.POST("", h.auth.RequireAdmin(h.product.Create))
			product.PATCH("/:id", h.auth.RequireAdmin(h.product.ToggleFeatured))
			product.DELETE("/:id", h.auth.RequireAdmin(h.product.Delete))
		}

		payments := api.Group("/payments")
		{
			payments.POST("/create-checkout-session", h.auth.RequireUser(h.payment.CreateCheckoutSession))
			payments.POST("/checkout-success", h.auth.RequireUser(h.payment.CheckoutSuccess))
		}

		api.GET("/analytics", h.auth.RequireAdmin(h.analytics.Get))
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
