package module

import (
	"time"

	"smartjotter/internal/platform/config"
)

// Options holds configuration settings for the dispatch module
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
// an empty base URL selects local draft mode
func FromConfig(cfg config.Conf) Options {
	hf := cfg.Prefix("HOSTAPP_")
	return Options{
		BaseURL: hf.MayString("BASE_URL", ""),
		Timeout: hf.MayDuration("TIMEOUT", 15*time.Second),
	}
}
