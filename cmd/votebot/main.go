package main

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"nuclight.org/votebot/internal/bot"
	"nuclight.org/votebot/internal/config"
	"nuclight.org/votebot/internal/logger"
	"nuclight.org/votebot/internal/ops"
	"nuclight.org/votebot/internal/poll"
	"nuclight.org/votebot/internal/storage"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Fatalf("Failed to init sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	lgr := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Sentry: cfg.SentryDSN != "",
	})

	lgr.Info("config loaded",
		"db_path", cfg.DBPath,
		"ops_addr", cfg.OpsAddr,
		"custom_emoji", len(cfg.CustomEmoji),
	)

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	lgr.Info("database initialized")

	emojiIndex := bot.NewEmojiIndex(cfg.CustomEmoji)
	tracker := bot.NewReactionTracker(emojiIndex)
	parser := poll.NewParser(emojiIndex, nil)

	b, err := bot.New(cfg.TelegramToken, parser, tracker, lgr)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	messenger := bot.NewMessenger(b.Bot(), tracker, emojiIndex)
	audit := bot.NewAudit(lgr, storage.NewAuditRepository(db))
	history := storage.NewHistoryRepository(db)

	controller := poll.NewController(messenger, poll.SystemClock{}, audit, history, lgr)
	b.SetController(controller)

	b.RegisterCommands()

	if cfg.OpsAddr != "" {
		opsServer := ops.New(cfg.OpsAddr, controller, history, lgr)
		go func() {
			if err := opsServer.Start(); err != nil {
				lgr.Error("ops server failed", "error", err)
			}
		}()
	}

	b.Start()
}
