package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/config"
	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/handlers"
	"github.com/BruksfildServices01/appointease/internal/metrics"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	"github.com/BruksfildServices01/appointease/internal/notify"
	"github.com/BruksfildServices01/appointease/internal/timezone"
	ucBooking "github.com/BruksfildServices01/appointease/internal/usecase/booking"
	"github.com/BruksfildServices01/appointease/internal/web"
)

// SettingsFromConfig monta as regras de agenda a partir da configuração.
func SettingsFromConfig(cfg *config.Config) ucBooking.Settings {
	return ucBooking.Settings{
		Schedule: domain.Schedule{
			StartHour:   cfg.Schedule.StartHour,
			EndHour:     cfg.Schedule.EndHour,
			StepMinutes: cfg.Schedule.SlotMinutes,
		},
		Location:             timezone.Location(cfg.Timezone),
		BookingWindowDays:    cfg.Schedule.BookingWindowDays,
		PreventDoubleBooking: cfg.PreventDoubleBooking,
	}
}

func newNotifier(cfg *config.Config) domain.Notifier {
	if !cfg.NotifyEnabled {
		return notify.Noop{}
	}
	return notify.NewHTTPNotifier(cfg.NotifyURL, cfg.NotifyAPIKey, cfg.NotifyTimeout)
}

func newMailer(cfg *config.Config, log zerolog.Logger) notify.Mailer {
	if cfg.SMTPHost == "" {
		return notify.NewLogMailer(log)
	}
	return notify.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.SMTPFrom,
	)
}

// RegisterRoutes liga páginas, API e infra no engine.
// O Dispatcher devolvido deve ser fechado no shutdown.
func RegisterRoutes(
	r *gin.Engine,
	repo domain.Repository,
	cfg *config.Config,
	log zerolog.Logger,
) *audit.Dispatcher {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid trusted proxies, forwarded headers ignored")
		_ = r.SetTrustedProxies(nil)
	}

	// um balde por superfície; a chamada interna de confirmação não concorre
	// com o tráfego público
	bookLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	apiLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	confirmLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	isInternal := middleware.InternalCaller(cfg.NotifyAPIKey, notify.APIKeyHeader)

	r.SetHTMLTemplate(web.Templates())

	// ======================================================
	// INFRA
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(log), log)
	settings := SettingsFromConfig(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	submitUC := ucBooking.NewSubmitBooking(
		repo,
		newNotifier(cfg),
		auditDispatcher,
		settings,
		log,
	)
	listUC := ucBooking.NewListBookings(repo, settings, log)
	deleteUC := ucBooking.NewDeleteBooking(repo, auditDispatcher)
	availabilityUC := ucBooking.NewGetAvailability(repo, settings)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		submitUC,
		listUC,
		deleteUC,
		availabilityUC,
		cfg.CheckEmailDomain,
	)
	webHandler := handlers.NewWebHandler(
		submitUC,
		listUC,
		deleteUC,
		availabilityUC,
		cfg.CheckEmailDomain,
	)
	confirmationHandler := handlers.NewConfirmationHandler(
		newMailer(cfg, log),
		cfg.NotifyAPIKey,
		log,
	)

	// ======================================================
	// INFRA ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		metrics.Register()
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/", webHandler.Home)
	r.GET("/book", webHandler.BookForm)
	r.POST("/book", bookLimiter.Middleware(), webHandler.BookSubmit)
	r.GET("/dashboard", webHandler.Dashboard)
	r.POST("/dashboard/:id/delete", webHandler.DashboardDelete)

	r.NoRoute(webHandler.NotFound)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/availability", bookingHandler.Availability)
		api.GET("/dates", bookingHandler.Dates)

		api.GET("/bookings", bookingHandler.List)
		api.POST("/bookings", apiLimiter.Middleware(), bookingHandler.Create)
		api.DELETE("/bookings/:id", bookingHandler.Delete)

		api.POST(
			"/send-confirmation",
			confirmLimiter.MiddlewareUnless(isInternal),
			confirmationHandler.Send,
		)
	}

	return auditDispatcher
}
