package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/gamify"
	"github.com/lifequest/platform/internal/handler"
	"github.com/lifequest/platform/internal/repository"
	"github.com/lifequest/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	JWTMgr             *auth.JWTManager
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	userRepo := repository.NewUserRepository()
	taskRepo := repository.NewTaskRepository()
	habitRepo := repository.NewHabitRepository()
	projectRepo := repository.NewProjectRepository()
	zoneRepo := repository.NewZoneRepository()
	achievementRepo := repository.NewAchievementRepository()
	energyLogRepo := repository.NewEnergyLogRepository()
	gearRepo := repository.NewGearRepository()
	inventoryRepo := repository.NewInventoryRepository()
	skillRepo := repository.NewSkillRepository()
	effectRepo := repository.NewEffectRepository()
	journalRepo := repository.NewJournalRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Gamification engine
	effectEngine := gamify.NewEffects(habitRepo, projectRepo, zoneRepo, gearRepo, inventoryRepo)
	evaluator := gamify.NewEvaluator(userRepo, taskRepo, habitRepo, achievementRepo, outboxRepo, logger)

	// Services
	authSvc := service.NewAuthService(pool, userRepo, outboxRepo, evaluator, jwtMgr, logger)
	rewardSvc := service.NewRewardService(pool, userRepo, taskRepo, habitRepo, projectRepo, zoneRepo, energyLogRepo, outboxRepo, evaluator, logger)
	taskSvc := service.NewTaskService(pool, taskRepo, evaluator, logger)
	habitSvc := service.NewHabitService(pool, habitRepo, zoneRepo, outboxRepo, evaluator, logger)
	projectSvc := service.NewProjectService(pool, projectRepo, zoneRepo, logger)
	zoneSvc := service.NewZoneService(pool, zoneRepo, logger)
	effectSvc := service.NewEffectService(pool, userRepo, effectRepo, skillRepo, gearRepo, inventoryRepo, effectEngine, logger)
	storeSvc := service.NewStoreService(pool, userRepo, zoneRepo, gearRepo, inventoryRepo, skillRepo, logger)
	achievementSvc := service.NewAchievementService(pool, achievementRepo, logger)
	journalSvc := service.NewJournalService(pool, journalRepo, outboxRepo, evaluator, logger)
	statsSvc := service.NewStatsService(pool, userRepo, taskRepo, energyLogRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	taskHandler := handler.NewTaskHandler(taskSvc, rewardSvc)
	habitHandler := handler.NewHabitHandler(habitSvc, rewardSvc)
	projectHandler := handler.NewProjectHandler(projectSvc, rewardSvc)
	zoneHandler := handler.NewZoneHandler(zoneSvc)
	effectHandler := handler.NewEffectHandler(effectSvc)
	storeHandler := handler.NewStoreHandler(storeSvc)
	achievementHandler := handler.NewAchievementHandler(achievementSvc)
	playerHandler := handler.NewPlayerHandler(statsSvc, journalSvc, effectSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Post("/sweep-overdue", taskHandler.SweepOverdue)
			r.Get("/{id}", taskHandler.Get)
			r.Post("/{id}/complete", taskHandler.Complete)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", habitHandler.List)
			r.Post("/", habitHandler.Create)
			r.Post("/{id}/complete", habitHandler.Complete)
			r.Post("/{id}/fail", habitHandler.Fail)
			r.Delete("/{id}", habitHandler.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Post("/{id}/complete", projectHandler.Complete)
			r.Delete("/{id}", projectHandler.Delete)
		})

		r.Route("/zones", func(r chi.Router) {
			r.Get("/", zoneHandler.List)
			r.Post("/", zoneHandler.Create)
			r.Get("/{id}", zoneHandler.Get)
		})

		r.Route("/effects", func(r chi.Router) {
			r.Get("/", effectHandler.ListCatalog)
			r.Post("/{id}/apply", effectHandler.Apply)
		})

		r.Post("/skills/{id}/use", effectHandler.UseSkill)
		r.Post("/gear/{id}/use", effectHandler.UseGear)

		r.Route("/store", func(r chi.Router) {
			r.Get("/gear", storeHandler.ListGear)
			r.Get("/skills", storeHandler.ListSkills)
			r.Get("/inventory", storeHandler.ListInventory)
			r.Post("/gear/{id}/buy", storeHandler.BuyGear)
			r.Post("/skills/{id}/buy", storeHandler.BuySkill)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", achievementHandler.ListCatalog)
			r.Get("/unlocked", achievementHandler.ListUnlocked)
		})

		r.Route("/me", func(r chi.Router) {
			r.Get("/stats", playerHandler.Stats)
			r.Get("/journal", playerHandler.ListJournal)
			r.Post("/journal", playerHandler.CreateJournalEntry)
			r.Post("/mana/reset", playerHandler.ResetMana)
		})
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))
		r.Use(auth.RequireAdmin)

		r.Route("/admin/achievements", func(r chi.Router) {
			r.Post("/", achievementHandler.Create)
			r.Put("/{id}", achievementHandler.Update)
			r.Delete("/{id}", achievementHandler.Delete)
		})
	})

	return r
}
