// Package main реализует точку входа сервиса обмена конспектами.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studynotes/internal/adapters/cache"
	httpServer "studynotes/internal/adapters/http"
	"studynotes/internal/adapters/postgres"
	"studynotes/internal/adapters/services"
	"studynotes/internal/app"
	"studynotes/internal/config"
	"studynotes/internal/domain/entities"
	"studynotes/internal/ports/api"
	dbpostgres "studynotes/pkg/db/postgres"
	"studynotes/pkg/logger"
	"studynotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrRunMigrations        = "failed to run migrations"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrSeedCategories       = "failed to seed categories"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note sharing service started"
	LogServiceShutdownDone = "note sharing service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogSeedingCategories   = "seeding category registry"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

// seedCategories наполняет справочник категорий стартовым набором.
// Уже существующие категории пропускаются.
func seedCategories(ctx context.Context, categoryUseCase api.CategoryUseCase, names []string) error {
	for _, name := range names {
		if _, err := categoryUseCase.Create(ctx, name); err != nil {
			if errors.Is(err, entities.ErrCategoryAlreadyExists) {
				continue
			}
			return fmt.Errorf("seeding category %q: %w", name, err)
		}
	}
	return nil
}

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		if err := dbpostgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrRunMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		database, err := dbpostgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(
			cfg.JWT.SecretKey,
			cfg.JWT.GetTokenTTL(),
			cfg.JWT.BCryptCost,
		)
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		log.Info(ctx, LogInitUseCases)
		useCases := httpServer.UseCases{
			Auth:       app.NewAuthUseCase(repoFactory.UserRepository(), passwordService, tokenService),
			User:       app.NewUserUseCase(repoFactory.UserRepository(), passwordService),
			Notes:      app.NewNoteUseCase(repoFactory.NoteRepository(), repoFactory.CategoryRepository(), redisCache),
			Favorites:  app.NewFavoriteUseCase(repoFactory.FavoriteRepository(), repoFactory.NoteRepository()),
			Comments:   app.NewCommentUseCase(repoFactory.CommentRepository(), repoFactory.NoteRepository(), redisCache),
			Categories: app.NewCategoryUseCase(repoFactory.CategoryRepository(), redisCache),
		}

		log.Info(ctx, LogSeedingCategories)
		if err := seedCategories(ctx, useCases.Categories, cfg.Seed.GetCategories()); err != nil {
			log.Error(ctx, ErrSeedCategories, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, useCases, tokenService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisCache.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
