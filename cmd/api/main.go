package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/ports"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/application/usecase"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	infraai "github.com/jhoicas/pakurmart-api/internal/infrastructure/ai"
	infrafirestore "github.com/jhoicas/pakurmart-api/internal/infrastructure/firestore"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/memory"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/pakurmart-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pakurmart-api/internal/interfaces/http"
	"github.com/jhoicas/pakurmart-api/pkg/config"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("ai", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir store de documentos")
	}
	defer store.Close()

	facade := storage.New(store, log, storage.Options{FanOut: cfg.Catalog.FanOut})
	recommendationUC := usecase.NewRecommendationUseCase(facade, newGenerator(cfg.AI), log)
	receiptUC := usecase.NewReceiptUseCase(facade, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "PakurMart API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Storage:         facade,
		Recommendations: recommendationUC,
		Receipts:        receiptUC,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore construye el adaptador de repository.DocumentStore según STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DocumentStore, error) {
	switch cfg.Store.Driver {
	case config.StoreFirestore:
		client, err := infrafirestore.NewClient(ctx, cfg.Firestore)
		if err != nil {
			return nil, err
		}
		return infrafirestore.NewStore(client), nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		store := postgres.NewDocumentStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return mongodb.NewStore(client, cfg.Mongo.DBName), nil
	case config.StoreMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("driver de store no soportado: %q", cfg.Store.Driver)
}

// newGenerator elige el proveedor del modelo de recomendaciones.
func newGenerator(cfg config.AIConfig) ports.RecommendationGenerator {
	if cfg.Provider == "anthropic" {
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
}
