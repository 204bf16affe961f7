package module

import (
	"time"

	"smartjotter/internal/platform/config"
)

// Options holds configuration settings for the jotter module
// missing ink or LLM credentials select the corresponding mock fallback,
// never a startup failure
type Options struct {
	MaxTextLen int
	RunTTL     time.Duration

	InkBaseURL        string
	InkApplicationKey string
	InkHMACKey        string
	InkLang           string
	InkTimeout        time.Duration

	LLMProvider  string
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMTimeout   time.Duration
	LLMMaxTokens int64
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	jf := cfg.Prefix("JOTTER_")
	ik := cfg.Prefix("INK_")
	lf := cfg.Prefix("LLM_")
	return Options{
		MaxTextLen: jf.MayInt("MAX_TEXT_LEN", 1000),
		RunTTL:     jf.MayDuration("RUN_TTL", 30*time.Minute),

		InkBaseURL:        ik.MayString("BASE_URL", ""),
		InkApplicationKey: ik.MayString("APPLICATION_KEY", ""),
		InkHMACKey:        ik.MayString("HMAC_KEY", ""),
		InkLang:           ik.MayString("LANG", "en_GB"),
		InkTimeout:        ik.MayDuration("TIMEOUT", 20*time.Second),

		LLMProvider:  lf.MayEnum("PROVIDER", "openai", "openai", "anthropic"),
		LLMAPIKey:    lf.MayString("API_KEY", ""),
		LLMBaseURL:   lf.MayString("BASE_URL", ""),
		LLMModel:     lf.MayString("MODEL", ""),
		LLMTimeout:   lf.MayDuration("TIMEOUT", 30*time.Second),
		LLMMaxTokens: int64(lf.MayInt("MAX_TOKENS", 1024)),
	}
}
