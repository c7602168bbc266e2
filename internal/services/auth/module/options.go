package module

import (
	"replyhub/internal/adapters/notion"
	"replyhub/internal/platform/config"
	authsvc "replyhub/internal/services/auth/service"
)

// FromConfig reads NOTION_* credentials from process config/env
func FromConfig(cfg config.Conf) authsvc.Config {
	nc := cfg.Prefix("NOTION_")
	return authsvc.Config{
		OAuth: notion.OAuthConfig{
			ClientID:     nc.MayString("CLIENT_ID", ""),
			ClientSecret: nc.MayString("CLIENT_SECRET", ""),
			RedirectURI:  nc.MayString("REDIRECT_URI", ""),
			BaseURL:      nc.MayString("BASE_URL", ""),
		},
		APIKey:     nc.MayString("API_KEY", ""),
		ServiceKey: cfg.Prefix("AUTH_").MayString("SERVICE_KEY", ""),
	}
}
