// Package replygen drafts replies to comments with an LLM provider.
// Providers never surface errors; any failure degrades to FallbackReply
// so the write-back pipeline always has something to post
package replygen

import (
	"context"

	perr "replyhub/internal/platform/errors"
)

// FallbackReply is posted whenever generation fails
const FallbackReply = "Thanks for your comment! 👍"

// Generator drafts one reply per comment
type Generator interface {
	Generate(ctx context.Context, comment, username string) string
}

// Config selects and configures the provider
type Config struct {
	Provider string // "deepseek" or "gemini"

	DeepSeekAPIKey  string
	DeepSeekBaseURL string

	GeminiAPIKey  string
	GeminiBaseURL string
}

// New builds the configured provider
func New(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "deepseek", "":
		if cfg.DeepSeekAPIKey == "" {
			return nil, perr.Configf("deepseek api key not configured")
		}
		return NewDeepSeek(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, perr.Configf("gemini api key not configured")
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiBaseURL), nil
	default:
		return nil, perr.Configf("unknown reply provider %q", cfg.Provider)
	}
}
