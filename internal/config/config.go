package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	TelegramToken string
	DBPath        string
	OpsAddr       string
	SentryDSN     string
	LogLevel      string
	CustomEmoji   map[string]string
}

func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_API_KEY")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_API_KEY is required")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	custom, err := parseCustomEmoji(os.Getenv("CUSTOM_EMOJI"))
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramToken: token,
		DBPath:        dbPath,
		OpsAddr:       os.Getenv("OPS_ADDR"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		CustomEmoji:   custom,
	}, nil
}

// parseCustomEmoji parses the CUSTOM_EMOJI list: comma-separated name:id
// pairs, e.g. "party:5368324170671202286,blob:5368000000000000001".
func parseCustomEmoji(raw string) (map[string]string, error) {
	custom := make(map[string]string)
	if raw == "" {
		return custom, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, id, ok := strings.Cut(pair, ":")
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("CUSTOM_EMOJI entry %q must be name:id", pair)
		}
		custom[name] = id
	}
	return custom, nil
}
