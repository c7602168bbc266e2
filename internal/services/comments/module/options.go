package module

import (
	"time"

	"replyhub/internal/adapters/notion"
	"replyhub/internal/platform/config"
	"replyhub/internal/services/replygen"
)

// Options carries the workspace target and outbound client tuning
type Options struct {
	DatabaseID string

	Client notion.Options

	Replygen replygen.Config
}

// FromConfig reads NOTION_* and REPLYGEN_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	nc := cfg.Prefix("NOTION_")
	rc := cfg.Prefix("REPLYGEN_")
	return Options{
		DatabaseID: nc.MayString("DATABASE_ID", ""),
		Client: notion.Options{
			BaseURL:    nc.MayString("BASE_URL", ""),
			Timeout:    nc.MayDuration("TIMEOUT", 15*time.Second),
			MaxRetries: nc.MayInt("MAX_RETRIES", 5),
			RetryBase:  nc.MayDuration("RETRY_BASE", 500*time.Millisecond),
		},
		Replygen: replygen.Config{
			Provider:        rc.MayEnum("PROVIDER", "deepseek", "deepseek", "gemini"),
			DeepSeekAPIKey:  rc.MayString("DEEPSEEK_API_KEY", ""),
			DeepSeekBaseURL: rc.MayString("DEEPSEEK_BASE_URL", ""),
			GeminiAPIKey:    rc.MayString("GEMINI_API_KEY", ""),
			GeminiBaseURL:   rc.MayString("GEMINI_BASE_URL", ""),
		},
	}
}
