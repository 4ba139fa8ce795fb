package server

import (
	"backend-trailpack/internal/auth"
	"backend-trailpack/internal/config"
	"backend-trailpack/internal/gear"
	"backend-trailpack/internal/gearinfo"
	"backend-trailpack/internal/hike"
	"backend-trailpack/internal/journal"
	"backend-trailpack/internal/packing"
	"backend-trailpack/internal/share"
	"backend-trailpack/internal/storage"
	"backend-trailpack/internal/stream"
	"backend-trailpack/internal/task"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	hikeSvc := hike.NewService(s.DB, s.Cfg.PublicBaseURL)
	packingSvc := packing.NewService(s.DB, s.Stream)
	taskSvc := task.NewService(s.DB, s.Stream)
	journalSvc := journal.NewService(s.DB)

	// every hike-scoped sub-resource route checks the hike belongs to the
	// authenticated user before the handler runs
	requireHike := hike.OwnershipMiddleware(hikeSvc)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	gear.RegisterRoutes(s.App.Group("/gear"), gear.NewService(s.DB), jwtMiddleware)
	hike.RegisterRoutes(s.App.Group("/hikes"), hikeSvc, jwtMiddleware)
	task.RegisterRoutes(s.App.Group("/hikes"), taskSvc, jwtMiddleware, requireHike)
	journal.RegisterRoutes(s.App.Group("/hikes"), journalSvc, jwtMiddleware, requireHike)
	packing.RegisterRoutes(s.App.Group("/packing"), packingSvc, jwtMiddleware, requireHike)
	gearinfo.RegisterRoutes(s.App.Group("/gearinfo"), gearinfo.NewService(s.Cfg.OpenAIAPIKey, s.Redis), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB, s.Cfg.UploadDir, s.Cfg.PublicBaseURL), jwtMiddleware, requireHike)
	share.RegisterRoutes(s.App.Group("/shared"), share.NewService(hikeSvc, packingSvc, taskSvc, journalSvc))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, jwtMiddleware, requireHike)

	// uploaded images are served straight off disk
	s.App.Static("/files", s.Cfg.UploadDir)
}
