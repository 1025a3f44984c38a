package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/officecorner/hr-system/internal/api"
	"github.com/officecorner/hr-system/internal/core/ports"
	"github.com/officecorner/hr-system/internal/infrastructure/config"
	mongodb "github.com/officecorner/hr-system/internal/infrastructure/db/mongo"
	redisdb "github.com/officecorner/hr-system/internal/infrastructure/db/redis"
	"github.com/officecorner/hr-system/internal/infrastructure/google"
	"github.com/officecorner/hr-system/internal/infrastructure/mailer"
	"github.com/officecorner/hr-system/internal/infrastructure/memstore"
	"github.com/officecorner/hr-system/internal/infrastructure/notify"
	"github.com/officecorner/hr-system/internal/infrastructure/storage"
	"github.com/officecorner/hr-system/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- OTP store backend ---
	var (
		otpStore ports.OTPStore
		rdb      *goredis.Client
	)
	switch cfg.OTPBackend {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		otpStore = redisdb.NewOTPStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("otp store: redis")
	default:
		mem := memstore.NewOTPStore()
		defer mem.Close()
		otpStore = mem
		log.Info().Msg("otp store: in-memory")
	}

	// --- Outbound notifications ---
	hub := notify.NewHub()
	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	})
	dispatcher := notify.NewDispatcher(0, smtpMailer, hub, log)
	dispatcher.Start(ctx)

	// --- Router ---
	e := api.NewRouter(api.Deps{
		DB:          db,
		RDB:         rdb,
		OTPStore:    otpStore,
		Google:      google.NewVerifier(cfg.GoogleClientID),
		Notifier:    dispatcher,
		Hub:         hub,
		Storage:     storage.NewHTTPUploader(storage.Config{UploadURL: cfg.Upload.URL, Preset: cfg.Upload.Preset}),
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		RememberTTL: cfg.RememberTTL,
		Version:     version,
		Log:         log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the unique constraints the repositories rely on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewAttendanceRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewDepartmentRepository(db).EnsureIndexes(ctx)
}
