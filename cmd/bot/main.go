package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/ai"
	"github.com/aliskhannn/python-tutor-bot/internal/config"
	"github.com/aliskhannn/python-tutor-bot/internal/delivery/httpapi"
	"github.com/aliskhannn/python-tutor-bot/internal/delivery/telegram"
	"github.com/aliskhannn/python-tutor-bot/internal/infra/postgres"
	pgrepository "github.com/aliskhannn/python-tutor-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/python-tutor-bot/internal/logger"
	"github.com/aliskhannn/python-tutor-bot/internal/repository"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
	"github.com/aliskhannn/python-tutor-bot/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		stop()
		lg.Fatal("application stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	if !cfg.Telegram.Enabled && !cfg.HTTP.Enabled {
		return errors.New("both telegram and http are disabled, nothing to run")
	}

	// Initialize storages and repositories.
	bank := repository.NewDefaultQuizBank()
	sampler := service.NewQuestionSampler(bank, rand.NewSource(time.Now().UnixNano()))
	quizStorage := storage.NewQuizStorage()
	chatStorage := storage.NewChatStorage(cfg.Chat.MaxHistory)

	results, closeDB, err := newResultRepository(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeDB()

	gemini, err := ai.NewGeminiClient(ctx, ai.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, lg.Named("gemini"))
	if err != nil {
		return err
	}

	// Initialize services.
	quizService := service.NewQuizService(bank, sampler, quizStorage, results, lg.Named("quiz"))
	tutorService := service.NewTutorService(gemini, chatStorage, service.TutorConfig{
		ContextMessages: cfg.Chat.ContextMessages,
		MaxCodeBytes:    cfg.Chat.MaxCodeBytes,
	}, lg.Named("tutor"))
	progressService := service.NewProgressService(results)
	janitor := service.NewSessionJanitor(
		quizStorage,
		chatStorage,
		cfg.Session.IdleTTL,
		cfg.Session.JanitorSpec,
		lg.Named("janitor"),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	start := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fn(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				return
			}
			errOnce.Do(func() { firstErr = fmt.Errorf("%s: %w", name, err) })
			cancel()
		}()
	}

	start("janitor", janitor.Start)

	if cfg.HTTP.Enabled {
		router := httpapi.NewRouter(
			httpapi.NewHandler(quizService, tutorService, progressService, lg.Named("http")),
			httpapi.RouterConfig{
				AllowedOrigins: cfg.HTTP.AllowedOrigins,
				RequestTimeout: cfg.HTTP.RequestTimeout,
			},
		)
		start("http", func(ctx context.Context) error {
			return serveHTTP(ctx, cfg.HTTP.Addr, router, lg)
		})
	}

	if cfg.Telegram.Enabled {
		bot, err := newBot(cfg, lg)
		if err != nil {
			cancel()
			wg.Wait()
			return err
		}
		handler := telegram.NewHandler(bot, lg.Named("telegram"), quizService, tutorService, progressService)
		start("telegram", handler.Run)
	}

	<-ctx.Done()
	lg.Info("shutdown signal received")
	wg.Wait()

	return firstErr
}

// newResultRepository stores results in PostgreSQL when DATABASE_URL is set and in memory otherwise.
func newResultRepository(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.ResultRepository, func(), error) {
	if !cfg.DB.Enabled() {
		lg.Info("DATABASE_URL is not set, quiz results are kept in memory")
		return repository.NewResultRepository(), func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	lg.Info("quiz results are stored in postgres")
	return pgrepository.NewResultRepository(pool, postgres.NewTransactor(pool)), pool.Close, nil
}

func newBot(cfg *config.Config, lg *zap.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start or resume a quiz"},
		{Command: "topics", Description: "List quiz topics"},
		{Command: "level", Description: "Set your level"},
		{Command: "chat", Description: "Ask the tutor a question"},
		{Command: "newchat", Description: "Start a fresh conversation"},
		{Command: "clearchat", Description: "Forget the conversation"},
		{Command: "concept", Description: "Explain a Python concept"},
		{Command: "review", Description: "Review a code snippet"},
		{Command: "progress", Description: "Show your results"},
		{Command: "stop", Description: "Stop the quiz and leave chat mode"},
		{Command: "help", Description: "Help"},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))
	return bot, nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, lg *zap.Logger) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("http server started", zap.String("addr", addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	lg.Info("http server stopped")
	return nil
}
