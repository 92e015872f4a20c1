package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/config"
	"github.com/tutorslink/api/database"
	"github.com/tutorslink/api/handlers"
	adminHandler "github.com/tutorslink/api/handlers/admin"
	applicationHandler "github.com/tutorslink/api/handlers/application"
	bookingHandler "github.com/tutorslink/api/handlers/booking"
	chatHandler "github.com/tutorslink/api/handlers/chat"
	enrollmentHandler "github.com/tutorslink/api/handlers/enrollment"
	guideHandler "github.com/tutorslink/api/handlers/guide"
	notificationHandler "github.com/tutorslink/api/handlers/notification"
	paymentHandler "github.com/tutorslink/api/handlers/payment"
	reviewHandler "github.com/tutorslink/api/handlers/review"
	sessionHandler "github.com/tutorslink/api/handlers/session"
	supportHandler "github.com/tutorslink/api/handlers/support"
	tutorHandler "github.com/tutorslink/api/handlers/tutor"
	userHandler "github.com/tutorslink/api/handlers/user"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/services/dispatch"
	"github.com/tutorslink/api/utils/cache"
	"github.com/tutorslink/api/utils/identity"
	"github.com/tutorslink/api/utils/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires middleware, services and handlers onto the app.
func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnvironmentVariable, dispatcher *dispatch.Dispatcher) {
	db := store.GetDB().(*gorm.DB)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: 300,
		RateLimitWindow:   time.Minute,
	})

	// Token verifier: Google ID tokens in production, HS256 shared
	// secret for local development and tests.
	var verifier identity.TokenVerifier
	if env.AUTH_DEV_SECRET != "" {
		log.Println("auth: using dev token verifier")
		verifier = identity.NewDevVerifier(env.AUTH_DEV_SECRET)
	} else {
		verifier = identity.NewGoogleVerifier(env.FIREBASE_PROJECT_ID)
	}

	// Redis-backed form limiter; nil cache degrades to pass-through.
	var redisCache *cache.RedisCache
	if env.REDIS_URL != "" {
		var err error
		redisCache, err = cache.NewRedisCache(env.REDIS_URL)
		if err != nil {
			log.Printf("redis unavailable, form rate limiting disabled: %v", err)
			redisCache = nil
		}
	}
	formLimiter := middleware.NewFormRateLimiter(redisCache, 5, time.Hour)

	// Services
	identitySvc := services.NewIdentityService(db, verifier, env.OPERATOR_EMAIL)
	notificationSvc := services.NewNotificationService(db)
	auditSvc := services.NewAuditService(db)
	webhookSvc := services.NewWebhookService(env.DISCORD_WEBHOOK_URL)
	emailSvc := services.NewEmailService(env)
	settingsSvc := services.NewSettingsService(db)
	tutorSvc := services.NewTutorService(db)
	userSvc := services.NewUserService(db, auditSvc, dispatcher)
	enrollmentSvc := services.NewEnrollmentService(db, settingsSvc, notificationSvc, webhookSvc, auditSvc, dispatcher)
	sessionSvc := services.NewSessionService(db, notificationSvc, auditSvc, dispatcher)
	reviewSvc := services.NewReviewService(db, notificationSvc, auditSvc, dispatcher)
	bookingSvc := services.NewBookingService(db, notificationSvc, webhookSvc, dispatcher)
	applicationSvc := services.NewApplicationService(db, notificationSvc, emailSvc, webhookSvc, auditSvc, dispatcher)
	chatSvc := services.NewChatService(db, notificationSvc, webhookSvc, dispatcher)
	supportSvc := services.NewSupportService(db, webhookSvc, dispatcher)
	guideSvc := services.NewGuideService(db, auditSvc, dispatcher)
	paymentSvc := services.NewPaymentService(db, notificationSvc, auditSvc, dispatcher)

	// Guards
	auth := middleware.NewAuthMiddleware(identitySvc)
	staffOnly := auth.RequireRoles(model.RoleStaff, model.RoleAdmin)
	adminOnly := auth.RequireRoles(model.RoleAdmin)

	// Handlers
	users := userHandler.NewUserHandler(db, identitySvc, tutorSvc)
	tutors := tutorHandler.NewTutorHandler(tutorSvc)
	enrollments := enrollmentHandler.NewEnrollmentHandler(enrollmentSvc)
	sessions := sessionHandler.NewSessionHandler(sessionSvc)
	reviews := reviewHandler.NewReviewHandler(reviewSvc)
	bookings := bookingHandler.NewBookingHandler(bookingSvc)
	applications := applicationHandler.NewApplicationHandler(applicationSvc)
	chat := chatHandler.NewChatHandler(chatSvc)
	support := supportHandler.NewSupportHandler(supportSvc)
	guides := guideHandler.NewGuideHandler(guideSvc)
	notifications := notificationHandler.NewNotificationHandler(notificationSvc)
	payments := paymentHandler.NewPaymentHandler(paymentSvc)
	admin := adminHandler.NewAdminHandler(userSvc, settingsSvc, reviewSvc, guideSvc, paymentSvc, auditSvc)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// Users
	userRoutes := api.Group("/users")
	userRoutes.Post("/register", auth.Required(), users.Register)
	userRoutes.Get("/me", auth.Required(), users.GetMe)
	userRoutes.Put("/me", auth.Required(), users.UpdateMe)

	// Tutors
	tutorRoutes := api.Group("/tutors")
	tutorRoutes.Get("/", tutors.List)
	tutorRoutes.Put("/me", auth.Required(), auth.RequireRoles(model.RoleTutor), tutors.UpsertProfile)
	tutorRoutes.Post("/", auth.Required(), staffOnly, tutors.RosterCreate)

	// Bookings
	bookingRoutes := api.Group("/bookings")
	bookingRoutes.Post("/", formLimiter.Limit("booking"), bookings.Create)
	bookingRoutes.Get("/my", auth.Required(), auth.RequireRoles(model.RoleTutor), bookings.ListMine)
	bookingRoutes.Patch("/:id/status", auth.Required(), bookings.UpdateStatus)

	// Enrollments
	enrollmentRoutes := api.Group("/enrollments")
	enrollmentRoutes.Post("/", auth.Required(), auth.RequireRoles(model.RoleStudent), enrollments.Create)
	enrollmentRoutes.Get("/my", auth.Required(), enrollments.ListMine)
	enrollmentRoutes.Patch("/:id/status", auth.Required(), enrollments.UpdateStatus)

	// Sessions
	sessionRoutes := api.Group("/sessions")
	sessionRoutes.Post("/", auth.Required(), auth.RequireRoles(model.RoleTutor), sessions.Create)
	sessionRoutes.Get("/my", auth.Required(), sessions.ListMine)
	sessionRoutes.Patch("/:id/attendance", auth.Required(), sessions.MarkAttendance)

	// Reviews
	reviewRoutes := api.Group("/reviews")
	reviewRoutes.Post("/", auth.Required(), auth.RequireRoles(model.RoleStudent), reviews.Create)
	reviewRoutes.Get("/tutor/:tutorId", reviews.ListByTutor)

	// Payments
	api.Get("/payments/my", auth.Required(), payments.ListMine)

	// Notifications
	notificationRoutes := api.Group("/notifications", auth.Required())
	notificationRoutes.Get("/", notifications.List)
	notificationRoutes.Patch("/:id/read", notifications.MarkRead)

	// Support contact form
	supportRoutes := api.Group("/support")
	supportRoutes.Post("/", formLimiter.Limit("support"), support.Create)
	supportRoutes.Get("/", auth.Required(), staffOnly, support.List)

	// Support chat; public by design, token attaches the account
	chatRoutes := api.Group("/chat")
	chatRoutes.Post("/", auth.Optional(), chat.Start)
	chatRoutes.Get("/:publicId/messages", chat.Messages)
	chatRoutes.Post("/:publicId/messages", auth.Optional(), chat.Append)
	chatRoutes.Post("/:publicId/escalate", chat.Escalate)

	// Guides
	guideRoutes := api.Group("/guides")
	guideRoutes.Get("/", guides.List)
	guideRoutes.Get("/:slug", guides.Get)

	// Tutor applications
	applicationRoutes := api.Group("/tutor-applications")
	applicationRoutes.Post("/", formLimiter.Limit("application"), applications.Create)
	applicationRoutes.Get("/", auth.Required(), staffOnly, applications.List)
	applicationRoutes.Patch("/:id/status", auth.Required(), staffOnly, applications.UpdateStatus)

	// Admin panel
	adminRoutes := api.Group("/admin", auth.Required(), adminOnly)
	adminRoutes.Get("/users", admin.ListUsers)
	adminRoutes.Patch("/users/:id/role", admin.ChangeUserRole)
	adminRoutes.Get("/settings", admin.ListSettings)
	adminRoutes.Get("/settings/:key", admin.GetSetting)
	adminRoutes.Put("/settings/:key", admin.UpsertSetting)
	adminRoutes.Get("/reviews", admin.ListReviews)
	adminRoutes.Patch("/reviews/:id", admin.ModerateReview)
	adminRoutes.Post("/guides", admin.CreateGuide)
	adminRoutes.Put("/guides/:id", admin.UpdateGuide)
	adminRoutes.Put("/guides/:id/translations", admin.UpsertGuideTranslation)
	adminRoutes.Delete("/guides/:id", admin.DeleteGuide)
	adminRoutes.Post("/payments", admin.RecordPayment)
	adminRoutes.Patch("/payments/:id/status", admin.UpdatePaymentStatus)
	adminRoutes.Get("/audit-logs", admin.ListAuditLogs)
}
