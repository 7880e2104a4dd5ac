package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/fadilmartias/cv-analyzer-pro/internal/domain/fiber/handler"
	"github.com/fadilmartias/cv-analyzer-pro/internal/middleware"
	"github.com/fadilmartias/cv-analyzer-pro/internal/service"
	"github.com/fadilmartias/cv-analyzer-pro/internal/usecase"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.Info("could not load .env file, using process environment")
	}

	appConfig := config.LoadAppConfig()
	slog.SetDefault(config.NewLogger(appConfig))

	extractionConfig := config.LoadExtractionConfig()
	analysisConfig := config.LoadAnalysisConfig()
	groqConfig := config.LoadGroqConfig()
	geminiConfig := config.LoadGeminiConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		// Multipart framing adds overhead, so the server limit is looser than the file limit.
		// Files between the two are rejected by intake with the same error.
		BodyLimit:    int(extractionConfig.MaxUploadBytes) * 2,
		ErrorHandler: handler.NewErrorHandler(appConfig),
	})
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, appConfig.RateLimitWindow, appConfig.IsProduction()))

	intake := service.NewIntakeService(extractionConfig)
	if err := intake.EnsureUploadDir(); err != nil {
		slog.Error("upload directory unavailable", "error", err)
		os.Exit(1)
	}

	tesseract := service.NewTesseractService(extractionConfig)
	if err := tesseract.Check(ctx); err != nil {
		slog.Warn("OCR disabled until tesseract is installed", "error", err)
	}
	pdf := service.NewPDFService(tesseract, extractionConfig)
	extractor := service.NewExtractionService(pdf, tesseract)

	groq := service.NewGroqService(groqConfig)
	attempts := make([]service.ModelAttempt, 0, len(groqConfig.Models)+len(geminiConfig.Models))
	for _, m := range groqConfig.Models {
		attempts = append(attempts, service.ModelAttempt{Model: m, Client: groq})
	}
	if geminiConfig.Enabled() {
		gemini, err := service.NewGeminiService(ctx, geminiConfig)
		if err != nil {
			slog.Warn("gemini disabled", "error", err)
		} else {
			for _, m := range geminiConfig.Models {
				attempts = append(attempts, service.ModelAttempt{Model: m, Client: gemini})
			}
		}
	}
	ai := service.NewAIAnalyzerService(service.AIAnalyzerConfig{
		Attempts:      attempts,
		Timeout:       groqConfig.Timeout,
		HealthTimeout: groqConfig.HealthTimeout,
		Temperature:   groqConfig.Temperature,
		MaxTokens:     groqConfig.MaxTokens,
		InputChars:    analysisConfig.AIInputChars,
	})

	uc := usecase.NewAnalysisUsecase(intake, extractor, ai, analysisConfig)
	h := handler.NewCVAnalyzerHandler(uc, appConfig)

	app.Get("/", func(c *fiber.Ctx) error {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: appConfig.Name + " is running",
			Data: fiber.Map{
				"endpoints": []string{
					"POST /api/v1/cv-analyzer/analyze",
					"GET /api/v1/cv-analyzer/health",
					"POST /api/v1/cv-analyzer/test",
					"GET /livez",
					"GET /readyz",
				},
				"supportedModels": ai.Models(),
			},
		})
	})
	h.RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				slog.Debug("runtime stats", "goroutines", runtime.NumGoroutine())
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("server running", "port", appConfig.Port, "env", appConfig.Env, "models", len(attempts))
	if err := app.Listen(appConfig.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
