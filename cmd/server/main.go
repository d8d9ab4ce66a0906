package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/advisor"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/auth"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/cases"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/laws"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/notify"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/schedule"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/config"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/database"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/logging"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}
	// The JWT middleware reads the secret from the environment; make sure
	// the configured default is visible there too.
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", cfg.JWTSecret)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("logger init failed:", err)
	}
	defer logger.Sync()

	db, err := database.Init(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Fatalw("database init failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatalw("migration failed", "error", err)
	}
	if err := database.Seed(db); err != nil {
		logger.Fatalw("seed failed", "error", err)
	}

	engine, err := laws.LoadEngine(db)
	if err != nil {
		logger.Fatalw("law corpus load failed", "error", err)
	}
	logger.Infow("law corpus loaded", "laws", len(engine.Corpus()))

	var completer advisor.Completer
	if oc := advisor.NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel); oc != nil {
		completer = oc
	} else {
		logger.Warnw("OPENAI_API_KEY not set, advisor will serve fallback responses")
	}

	audit := advisor.NewRecorder(db, logger)
	advisorSvc := advisor.NewService(db, engine, completer, audit, logger, cfg.AITimeout)

	notifier := notify.NewService(db, logger)
	scheduleSvc := schedule.NewService(db, logger, notifier)

	statsCache := gocache.New(cfg.StatsCacheTTL, 2*cfg.StatsCacheTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: auth.ErrorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")

	// Auth
	authH := auth.NewHandler(db)
	api.Post("/signup", authH.Signup)
	api.Post("/login", authH.Login)
	api.Get("/me", auth.RequireAuth(), authH.Me)
	api.Get("/users", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), authH.ListUsers)

	// Cases
	caseH := cases.NewHandler(db, advisorSvc, statsCache)
	api.Post("/cases", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin, models.RoleClerk), caseH.Create)
	api.Get("/cases", auth.RequireAuth(), caseH.List)
	api.Get("/cases/stats", auth.RequireAuth(), caseH.Stats)
	api.Get("/cases/:id", auth.RequireAuth(), caseH.Get)
	api.Post("/cases/:id/analyze-priority", auth.RequireAuth(), caseH.AnalyzePriority)

	// Scheduling
	schedH := schedule.NewHandler(scheduleSvc, advisorSvc)
	sched := api.Group("/schedule", auth.RequireAuth())
	sched.Get("/hearings", schedH.ListHearings)
	sched.Post("/suggest", schedH.Suggest)
	sched.Post("/confirm", auth.RequireRole(models.RoleAdmin, models.RoleJudge, models.RoleClerk), schedH.Confirm)
	sched.Post("/adjourn", auth.RequireRole(models.RoleAdmin, models.RoleJudge, models.RoleClerk), schedH.Adjourn)
	sched.Get("/courtrooms", schedH.Courtrooms)
	sched.Get("/judge-availability/:judgeID", schedH.JudgeAvailability)

	// Laws
	lawH := laws.NewHandler(db, engine)
	api.Get("/laws", auth.RequireAuth(), lawH.List)
	api.Get("/laws/search", auth.RequireAuth(), lawH.Search)
	api.Get("/laws/:id", auth.RequireAuth(), lawH.Get)

	// Chat (public, attributed when a token is present)
	chatH := advisor.NewHandler(advisorSvc)
	api.Post("/chat/query", auth.OptionalAuth(), chatH.Chat)

	// Notifications
	notifH := notify.NewHandler(db)
	api.Get("/notifications", auth.RequireAuth(), notifH.List)
	api.Post("/notifications/:id/read", auth.RequireAuth(), notifH.MarkRead)

	logger.Infow("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
