package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/exactfit/customer-web/internal/apiclient"
	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/config"
	"github.com/exactfit/customer-web/internal/handlers"
	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/session"
	"github.com/exactfit/customer-web/internal/state"
	"github.com/exactfit/customer-web/internal/upload"
	ucForms "github.com/exactfit/customer-web/internal/usecase/forms"
	ucSignin "github.com/exactfit/customer-web/internal/usecase/signin"
)

// Infra is what main builds from the config before routes are registered.
type Infra struct {
	Backend  *apiclient.Client
	Store    state.Store
	Uploader *upload.Uploader
	Sink     audit.Sink
	Audit    *audit.Dispatcher
	Signer   *session.Signer
	Logger   *slog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, infra Infra) {
	logger := infra.Logger
	window := cfg.OTPResendWindow()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// USE CASES - SIGN-IN
	// ======================================================
	getStateUC := ucSignin.NewGetState(infra.Store, window)
	requestOTPUC := ucSignin.NewRequestOTP(infra.Backend, infra.Store, infra.Audit, window)
	resendOTPUC := ucSignin.NewResendOTP(infra.Backend, infra.Store, infra.Audit, window)
	editBoxesUC := ucSignin.NewEditBoxes(infra.Store, window)
	verifyOTPUC := ucSignin.NewVerifyOTP(infra.Backend, infra.Store, infra.Audit, window)
	logoutUC := ucSignin.NewLogout(infra.Store)

	// ======================================================
	// USE CASES - FORMS
	// ======================================================
	enquiryDraftUC := ucForms.NewEnquiryDraft(infra.Store, infra.Backend)
	submitEnquiryUC := ucForms.NewSubmitEnquiry(infra.Backend, infra.Store, infra.Audit)
	emergencyDraftUC := ucForms.NewEmergencyDraft(infra.Store, infra.Backend)
	submitEmergencyUC := ucForms.NewSubmitEmergency(infra.Backend, infra.Store, infra.Audit)
	selectPlanUC := ucForms.NewSelectPlan(infra.Backend, infra.Store, infra.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		getStateUC,
		requestOTPUC,
		resendOTPUC,
		editBoxesUC,
		verifyOTPUC,
		logoutUC,
		logger,
	)
	catalogHandler := handlers.NewCatalogHandler(infra.Backend, selectPlanUC, infra.Audit, cfg.VerifyEmailDomain, logger)
	meHandler := handlers.NewMeHandler(infra.Backend, infra.Audit, cfg.VerifyEmailDomain, logger)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryDraftUC, submitEnquiryUC, logger)
	emergencyHandler := handlers.NewEmergencyHandler(emergencyDraftUC, submitEmergencyUC, logger)
	dashboardHandler := handlers.NewDashboardHandler(infra.Backend, logger)
	ticketsHandler := handlers.NewTicketsHandler(infra.Backend, infra.Store, infra.Uploader, infra.Audit, logger)
	notificationsHandler := handlers.NewNotificationsHandler(infra.Sink, logger)
	stateHandler := handlers.NewStateHandler(infra.Store, logger)
	webHandler := handlers.NewWebHandler(infra.Backend, cfg.MapsScriptURL(), logger)

	// Everything below carries a session.
	app := r.Group("/")
	app.Use(middleware.SessionMiddleware(infra.Signer, cfg.CookieSecure, logger))
	app.Use(middleware.LoadToken(infra.Store, logger))

	// ======================================================
	// WEB (HTML)
	// ======================================================
	app.GET("/", webHandler.Home)
	app.GET("/services", webHandler.Services)
	app.GET("/services/:slug", webHandler.ServiceDetail)
	app.GET("/packages", webHandler.Packages)
	app.GET("/enquiry", webHandler.Enquiry)
	app.GET("/emergency", webHandler.Emergency)
	app.GET("/contact", webHandler.Contact)
	app.GET("/signin", webHandler.SignIn)
	app.GET("/profile-setup", webHandler.ProfileSetup)
	app.GET("/dashboard", webHandler.Dashboard)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := app.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/settings", catalogHandler.Settings)
		api.POST("/contact", catalogHandler.Contact)
		api.GET("/services", catalogHandler.Services)
		api.GET("/services/:slug", catalogHandler.ServiceBySlug)
		api.GET("/packages", catalogHandler.Packages)
		api.GET("/packages/:slug", catalogHandler.PackageBySlug)
		api.POST("/packages/:slug/select", catalogHandler.SelectPackage)

		api.GET("/state/events", stateHandler.Events)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.GET("/auth/state", authHandler.State)
		api.POST("/auth/phone", authHandler.CheckPhone)
		api.POST("/auth/logout", authHandler.Logout)

		// One call per typed digit, so the boxes stay outside the limiter.
		api.POST("/auth/otp/boxes", authHandler.EditBoxes)

		otp := api.Group("/auth/otp")
		otp.Use(middleware.RateLimit(cfg.OTPRatePerMinute, cfg.OTPRateBurst))
		{
			otp.POST("/request", authHandler.RequestOTP)
			otp.POST("/resend", authHandler.ResendOTP)
			otp.POST("/verify", authHandler.VerifyOTP)
		}

		// ------------------------------
		// FORMS
		// ------------------------------
		api.GET("/enquiry/draft", enquiryHandler.GetDraft)
		api.PATCH("/enquiry/draft", enquiryHandler.PatchDraft)
		api.POST("/enquiry/draft/address-panel", enquiryHandler.ToggleAddressPanel)

		api.GET("/emergency/draft", emergencyHandler.GetDraft)
		api.PATCH("/emergency/draft", emergencyHandler.PatchDraft)
		api.POST("/emergency/draft/address-panel", emergencyHandler.ToggleAddressPanel)
		api.POST("/emergency/draft/service-panel", emergencyHandler.ToggleServicePanel)
		api.POST("/emergency/draft/service/:id", emergencyHandler.SelectService)

		// ------------------------------
		// SIGNED IN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireSignIn())
		{
			secured.POST("/enquiry/draft/address/:id", enquiryHandler.SelectAddress)
			secured.POST("/enquiry", enquiryHandler.Submit)
			secured.POST("/emergency/draft/address/:id", emergencyHandler.SelectAddress)
			secured.POST("/emergency", emergencyHandler.Submit)

			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateProfile)

			secured.GET("/me/addresses", meHandler.ListAddresses)
			secured.POST("/me/addresses", meHandler.CreateAddress)
			secured.PUT("/me/addresses/:id", meHandler.UpdateAddress)
			secured.DELETE("/me/addresses/:id", meHandler.DeleteAddress)

			secured.GET("/me/bookings", dashboardHandler.Bookings)
			secured.GET("/me/subscriptions", dashboardHandler.Subscriptions)

			secured.GET("/me/tickets", ticketsHandler.List)
			secured.POST("/me/tickets", ticketsHandler.Raise)
			secured.GET("/me/tickets/attachments", ticketsHandler.ListAttachments)
			secured.POST("/me/tickets/attachments", ticketsHandler.AddAttachment)
			secured.DELETE("/me/tickets/attachments/:index", ticketsHandler.RemoveAttachment)
			secured.GET("/me/tickets/:number", ticketsHandler.Get)
			secured.POST("/uploads/presign", ticketsHandler.Presign)

			secured.GET("/me/notifications", notificationsHandler.List)
		}
	}
}
