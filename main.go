package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/nourivox/nourivox-backend/pkg/ai"
	"github.com/nourivox/nourivox-backend/pkg/api"
	"github.com/nourivox/nourivox-backend/pkg/chatgpt"
	"github.com/nourivox/nourivox-backend/pkg/database"
	"github.com/nourivox/nourivox-backend/pkg/gemini"
	"github.com/nourivox/nourivox-backend/pkg/logger"
	"github.com/nourivox/nourivox-backend/pkg/repository"
	"github.com/nourivox/nourivox-backend/pkg/services"
	"github.com/nourivox/nourivox-backend/pkg/storage"
	"github.com/nourivox/nourivox-backend/pkg/workers"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"5000"`
	DatabaseURL    string   `env:"DATABASE_URL,required"`
	SupabaseURL    string   `env:"SUPABASE_URL,required"`
	SupabaseKey    string   `env:"SUPABASE_KEY,required"`
	SupabaseBucket string   `env:"SUPABASE_BUCKET" envDefault:"nourivox-uploads"`
	GeminiAPIKey   string   `env:"GEMINI_API_KEY"`
	OpenAIAPIKey   string   `env:"OPENAI_API_KEY"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:" " envDefault:"http://localhost http://localhost:8080"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	// Local development keeps its environment in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	uploader, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	chain, err := setupProviderChain(cfg)
	if err != nil {
		return nil, err
	}

	messagesRepo := repository.NewMessagesRepository(db)
	appointmentsRepo := repository.NewAppointmentsRepository(db)
	remindersRepo := repository.NewRemindersRepository(db)
	doctorsRepo := repository.NewDoctorsRepository(db)

	chatService := services.NewChatService(messagesRepo, chain)
	voiceService := services.NewVoiceService(chain, chain, uploader, chatService)
	imageService := services.NewImageService(uploader, chain, messagesRepo)
	appointmentService := services.NewAppointmentService(appointmentsRepo, doctorsRepo)

	router := api.NewRouter(
		chatService,
		voiceService,
		imageService,
		appointmentService,
		remindersRepo,
		doctorsRepo,
		cfg.AllowedOrigins,
	)

	server, err := workers.NewHTTPServer(":"+cfg.Port, router)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}

	return workers.Group{server}, nil
}

// setupProviderChain registers a provider for each capability it serves, but
// only when its key is configured. Gemini takes priority over OpenAI.
func setupProviderChain(cfg Config) (*ai.Chain, error) {
	var chatProviders []ai.ChatProvider
	var visionProviders []ai.VisionProvider
	var transcribers []ai.Transcriber
	var synthesizers []ai.SpeechSynthesizer

	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		chatProviders = append(chatProviders, geminiClient)
		visionProviders = append(visionProviders, geminiClient)
	}

	if cfg.OpenAIAPIKey != "" {
		openAIClient, err := chatgpt.NewClient(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("creating openai client: %w", err)
		}
		chatProviders = append(chatProviders, openAIClient)
		visionProviders = append(visionProviders, openAIClient)
		transcribers = append(transcribers, openAIClient)
		synthesizers = append(synthesizers, openAIClient)
	}

	slog.Info("Provider chain configured",
		"chat", lo.Map(chatProviders, func(p ai.ChatProvider, _ int) string { return p.Name() }),
		"vision", lo.Map(visionProviders, func(p ai.VisionProvider, _ int) string { return p.Name() }),
		"transcription", lo.Map(transcribers, func(p ai.Transcriber, _ int) string { return p.Name() }),
		"speech", lo.Map(synthesizers, func(p ai.SpeechSynthesizer, _ int) string { return p.Name() }),
	)

	return ai.NewChain(chatProviders, visionProviders, transcribers, synthesizers), nil
}
