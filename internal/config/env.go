package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	GatewayMidtrans = "midtrans"
	GatewayXendit   = "xendit"

	defaultPort        = "8080"
	defaultOpenAIModel = "gpt-4o"
	defaultGeminiModel = "gemini-1.5-flash"
	defaultLLMTimeout  = 60 * time.Second
	defaultRateLimit   = "30-M"
	defaultAppBaseURL  = "http://localhost:5173"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Load(os.Getenv)
}

// builds a Config from a lookup function so tests can supply their own environment
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:        getenv("ENVIRONMENT"),
		Port:               getenv("PORT"),
		SupabaseConnString: getenv("SUPABASE_CONNECTION_STRING"),
		SupabaseJWTSecret:  getenv("SUPABASE_JWT_SECRET"),
		AppBaseURL:         strings.TrimRight(getenv("APP_BASE_URL"), "/"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
		RedisURL:           getenv("REDIS_URL"),
		RateLimit:          getenv("RATE_LIMIT"),
		LLM: LLMConfig{
			OpenAIKey:   getenv("OPENAI_API_KEY"),
			OpenAIModel: getenv("OPENAI_MODEL"),
			GeminiKey:   getenv("GEMINI_API_KEY"),
			GeminiModel: getenv("GEMINI_MODEL"),
			Timeout:     defaultLLMTimeout,
		},
		Payments: PaymentsConfig{
			Gateway:             strings.ToLower(getenv("PAYMENT_GATEWAY")),
			MidtransServerKey:   getenv("MIDTRANS_SERVER_KEY"),
			XenditSecretKey:     getenv("XENDIT_SECRET_KEY"),
			XenditCallbackToken: getenv("XENDIT_CALLBACK_TOKEN"),
		},
	}

	if cfg.SupabaseConnString == "" {
		return nil, fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	if cfg.SupabaseJWTSecret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET environment variable is required")
	}

	if cfg.LLM.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = defaultAppBaseURL
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	if cfg.LLM.OpenAIModel == "" {
		cfg.LLM.OpenAIModel = defaultOpenAIModel
	}

	if cfg.LLM.GeminiModel == "" {
		cfg.LLM.GeminiModel = defaultGeminiModel
	}

	if raw := getenv("LLM_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("LLM_TIMEOUT must be a positive duration, got %q", raw)
		}

		cfg.LLM.Timeout = timeout
	}

	if raw := getenv("MIDTRANS_SANDBOX"); raw != "" {
		sandbox, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("MIDTRANS_SANDBOX must be a boolean, got %q", raw)
		}

		cfg.Payments.MidtransSandbox = sandbox
	}

	if err := validatePayments(cfg.Payments); err != nil {
		return nil, err
	}

	if cfg.Payments.Gateway == "" {
		cfg.Payments.Gateway = GatewayMidtrans
	}

	return cfg, nil
}

func validatePayments(p PaymentsConfig) error {
	switch p.Gateway {
	case GatewayMidtrans, "":
		if p.MidtransServerKey == "" {
			return fmt.Errorf("MIDTRANS_SERVER_KEY environment variable is required for the midtrans gateway")
		}
	case GatewayXendit:
		if p.XenditSecretKey == "" {
			return fmt.Errorf("XENDIT_SECRET_KEY environment variable is required for the xendit gateway")
		}
	default:
		return fmt.Errorf("unsupported PAYMENT_GATEWAY: %s", p.Gateway)
	}

	return nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
