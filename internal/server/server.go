package server

import (
	"github.com/hughac94/rungrade-backend/internal/analysis"
	"github.com/hughac94/rungrade-backend/internal/batch"
	"github.com/hughac94/rungrade-backend/internal/config"
	"github.com/hughac94/rungrade-backend/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Redis    *redis.Client
	Stream   *stream.Hub
	Registry *batch.Registry
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		// whole activity files travel in one request
		BodyLimit: 50 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		Redis:    redisClient,
		Stream:   hub,
		Registry: batch.NewRegistry(hub, cfg.JobTTL(), cfg.ProgressDelay()),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	batch.RegisterRoutes(s.App, s.Registry, s.Cfg.BinLengthM)
	analysis.RegisterRoutes(s.App.Group("/analysis"))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
