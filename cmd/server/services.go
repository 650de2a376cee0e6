package main

import (
	"fmt"

	"codeberg.org/scholargo/server/internal/advisor"
	"codeberg.org/scholargo/server/internal/config"
	"codeberg.org/scholargo/server/internal/llm"
	"codeberg.org/scholargo/server/internal/logger"
	"codeberg.org/scholargo/server/internal/metrics"
	"codeberg.org/scholargo/server/internal/payments"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
	"codeberg.org/scholargo/server/scholargo/transactions"
)

// builds the llm backends, the advisor, the quota ledger and the payment service
func InitializeServices(cfg *config.Config, m *metrics.Metrics, profileRepo *profiles.Repository, transactionRepo *transactions.Repository) (*Services, error) {
	registry, err := llm.NewRegistryFromKeys(
		llm.ClientConfig{APIKey: cfg.LLM.OpenAIKey, Model: cfg.LLM.OpenAIModel},
		llm.ClientConfig{APIKey: cfg.LLM.GeminiKey, Model: cfg.LLM.GeminiModel},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm backends: %w", err)
	}

	logger.Info("llm backends registered", "providers", registry.Providers())

	advisorService := advisor.NewService(registry, m, advisor.Config{Timeout: cfg.LLM.Timeout})
	ledger := quota.NewLedger(profileRepo, quota.WithRecorder(m))

	gateway, err := newGateway(cfg)
	if err != nil {
		return nil, err
	}

	paymentService := payments.NewService(gateway, transactionRepo, profileRepo, m, payments.Config{
		AppBaseURL: cfg.AppBaseURL,
	})

	logger.Info("payment gateway configured", "gateway", gateway.Name())

	return &Services{
		LLM:      registry,
		Advisor:  advisorService,
		Ledger:   ledger,
		Payments: paymentService,
	}, nil
}

func newGateway(cfg *config.Config) (payments.Gateway, error) {
	switch cfg.Payments.Gateway {
	case config.GatewayMidtrans:
		return payments.NewMidtrans(payments.MidtransConfig{
			ServerKey: cfg.Payments.MidtransServerKey,
			Sandbox:   cfg.Payments.MidtransSandbox,
		}), nil
	case config.GatewayXendit:
		if cfg.Payments.XenditCallbackToken == "" {
			logger.Warn("XENDIT_CALLBACK_TOKEN is not set, xendit notifications are not authenticated")
		}

		return payments.NewXendit(payments.XenditConfig{
			SecretKey:     cfg.Payments.XenditSecretKey,
			CallbackToken: cfg.Payments.XenditCallbackToken,
		}), nil
	}

	return nil, fmt.Errorf("unknown payment gateway %q", cfg.Payments.Gateway)
}
