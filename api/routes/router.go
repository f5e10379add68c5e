package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knightmeat/taste-backend/api/controllers"
	"github.com/knightmeat/taste-backend/api/middleware"
	"github.com/knightmeat/taste-backend/internal/accounts"
	"github.com/knightmeat/taste-backend/internal/dishes"
	"github.com/knightmeat/taste-backend/pkg/auth/session"
	"github.com/knightmeat/taste-backend/pkg/config"
	"github.com/knightmeat/taste-backend/pkg/db"
	"github.com/knightmeat/taste-backend/pkg/logger"
	"github.com/knightmeat/taste-backend/pkg/metrics"
	"github.com/knightmeat/taste-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	accountService accounts.Service,
	dishService dishes.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/account", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AccountRegister(accountService, logg))
		r.Post("/verify-email/{id}/{token}", controllers.AccountVerifyEmail(accountService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AccountLogin(accountService, logg))
		r.Post("/refresh", controllers.AccountRefresh(accountService, logg))
		r.Post("/forgot-password", controllers.AccountForgotPassword(accountService, logg))
		r.Post("/reset-password/{token}", controllers.AccountResetPassword(accountService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

			r.Get("/ping", controllers.PrivatePing())
			r.Post("/logout", controllers.AccountLogout(accountService, logg))
			r.Get("/user-details", controllers.AccountUserDetails(accountService, logg))
			r.Post("/change-password", controllers.AccountChangePassword(accountService, logg))
			r.Patch("/change-phone-number", controllers.AccountChangePhoneNumber(accountService, logg))
			r.Put("/change-location", controllers.AccountChangeLocation(accountService, logg))
			r.Put("/change-names", controllers.AccountChangeNames(accountService, logg))
			r.Put("/change-profile-picture", controllers.AccountChangeProfilePicture(accountService, logg))
		})
	})

	r.Route("/api/dishes", func(r chi.Router) {
		r.Get("/", controllers.DishList(dishService, logg))
		r.Get("/{id}", controllers.DishGet(dishService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
			r.Post("/", controllers.DishCreate(dishService, logg))
		})
	})

	return r
}
