package config

import "time"

type Config struct {
	Environment        string
	Port               string
	SupabaseConnString string
	SupabaseJWTSecret  string
	AppBaseURL         string
	CORSAllowedOrigins []string

	LLM      LLMConfig
	Payments PaymentsConfig

	RedisURL  string
	RateLimit string // ulule formatted rate, e.g. "30-M"
}

type LLMConfig struct {
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string // gemini backend is registered only when set
	GeminiModel string
	Timeout     time.Duration
}

type PaymentsConfig struct {
	Gateway             string // "midtrans" or "xendit"
	MidtransServerKey   string
	MidtransSandbox     bool
	XenditSecretKey     string
	XenditCallbackToken string
}

// flags for the pdftext dev utility
type PDFTextFlags struct {
	Dirs      []string
	Separator bool
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
