package router

import (
	certsvc "bms-backend/internal/application/certificates"
	contactsvc "bms-backend/internal/application/contacts"
	"bms-backend/internal/application/emails"
	enrollsvc "bms-backend/internal/application/enrollments"
	offersvc "bms-backend/internal/application/offers"
	"bms-backend/internal/auth"
	"bms-backend/internal/config"
	"bms-backend/internal/infrastructure/database"
	adminhandler "bms-backend/internal/interfaces/handlers/admin"
	certhandler "bms-backend/internal/interfaces/handlers/certificates"
	contacthandler "bms-backend/internal/interfaces/handlers/contacts"
	enrollhandler "bms-backend/internal/interfaces/handlers/enrollments"
	healthhandler "bms-backend/internal/interfaces/handlers/health"
	offerhandler "bms-backend/internal/interfaces/handlers/offers"
	"bms-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned DB and Redis clients are handed back so the
// entrypoint can verify connectivity on boot.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS first: disallowed origins never reach a route.
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Redis is optional: without it the rate limiter and its health entry
	// are simply absent.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health routes stay up even without a database.
	healthHandlers := &healthhandler.Handlers{Rdb: rdb}
	if db != nil {
		healthHandlers.DB = &gormDBPinger{db: db}
	}
	app.Get("/api/health", healthHandlers.Status)
	app.Get("/health/json", healthHandlers.JSON)

	if db != nil {
		mailer := &emails.BrevoClient{
			APIKey:       cfg.SendinblueAPIKey,
			MailFrom:     cfg.MailFrom,
			ContactEmail: cfg.ContactEmail,
		}
		requireAdmin := middleware.RequireAdmin(cfg.AdminJWTSecret)
		submitLimit := middleware.RateLimit(middleware.DefaultRateLimit(), rdb)

		// Admin auth
		authService := &auth.Service{DB: db, JWTSecret: cfg.AdminJWTSecret}
		adminHandlers := &adminhandler.Handlers{Service: authService}
		adminGroup := app.Group("/api/admin")
		adminGroup.Post("/login", adminHandlers.Login)
		adminGroup.Get("/me", requireAdmin, adminHandlers.Me)

		// Contacts: public create, admin management
		contactService := &contactsvc.Service{DB: db}
		contactHandlers := &contacthandler.Handlers{Service: contactService, Mailer: mailer}
		contactGroup := app.Group("/api/contacts")
		contactGroup.Post("/", submitLimit, contactHandlers.CreateContact)
		contactGroup.Get("/", requireAdmin, contactHandlers.GetContacts)
		contactGroup.Put("/:id", requireAdmin, contactHandlers.UpdateContactStatus)
		contactGroup.Delete("/:id", requireAdmin, contactHandlers.DeleteContact)

		// Enrollments: public create, admin management
		enrollService := &enrollsvc.Service{DB: db}
		enrollHandlers := &enrollhandler.Handlers{Service: enrollService, Mailer: mailer}
		enrollGroup := app.Group("/api/enrollments")
		enrollGroup.Post("/", submitLimit, enrollHandlers.CreateEnrollment)
		enrollGroup.Get("/", requireAdmin, enrollHandlers.GetEnrollments)
		enrollGroup.Put("/:id", requireAdmin, enrollHandlers.UpdateEnrollmentStatus)
		enrollGroup.Delete("/:id", requireAdmin, enrollHandlers.DeleteEnrollment)

		// Offers: public active listing, admin authoring
		offerService := &offersvc.Service{DB: db}
		offerHandlers := &offerhandler.Handlers{Service: offerService}
		offerGroup := app.Group("/api/offers")
		offerGroup.Get("/active", offerHandlers.GetActiveOffers)
		offerGroup.Get("/", requireAdmin, offerHandlers.GetOffers)
		offerGroup.Post("/", requireAdmin, offerHandlers.CreateOffer)
		offerGroup.Put("/:id", requireAdmin, offerHandlers.UpdateOffer)
		offerGroup.Delete("/:id", requireAdmin, offerHandlers.DeleteOffer)

		// Certificates: public verification, admin authoring
		certService := &certsvc.Service{DB: db, VerifyBaseURL: cfg.VerifyBaseURL}
		certHandlers := &certhandler.Handlers{Service: certService}
		certGroup := app.Group("/api/certificates")
		certGroup.Get("/verify/:certificateId", certHandlers.VerifyCertificate)
		certGroup.Get("/", requireAdmin, certHandlers.GetCertificates)
		certGroup.Post("/", requireAdmin, certHandlers.CreateCertificate)
		certGroup.Put("/:id", requireAdmin, certHandlers.UpdateCertificate)
		certGroup.Delete("/:id", requireAdmin, certHandlers.DeleteCertificate)
	}

	return app, db, rdb, nil
}
