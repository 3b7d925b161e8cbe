package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/handler"
	apimiddleware "github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/middleware"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/router"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/repository"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/usecase"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "vayada-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	{
		pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
	}

	collaborationRepo := repository.NewPostgresCollaborationRepository(pool)
	messageRepo := repository.NewPostgresMessageRepository(pool)
	directoryRepo := repository.NewPostgresDirectoryRepository(pool)

	collaborationUseCase := usecase.NewCollaborationUseCase(collaborationRepo, messageRepo, directoryRepo)
	chatUseCase := usecase.NewChatUseCase(messageRepo, collaborationRepo)

	collaborationHandler := handler.NewCollaborationHandler(collaborationUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	healthHandler := handler.NewHealthHandler(pool)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(cfg.JWTSecret)

	router.Setup(e, authMiddleware, collaborationHandler, chatHandler, healthHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
