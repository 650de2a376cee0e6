package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codeberg.org/scholargo/server/internal/llm"
	"codeberg.org/scholargo/server/internal/logger"
)

const (
	defaultTimeout       = 60 * time.Second
	defaultResumeTimeout = 15 * time.Second

	analysisTemperature = 0.7
	chatTemperature     = 0.7
	insightTemperature  = 0.5
	resumeTemperature   = 0.3
)

// routes analysis, chat, insight and resume requests to the selected backend
type Service struct {
	backends *llm.Registry
	recorder Recorder
	config   Config
}

func NewService(backends *llm.Registry, recorder Recorder, config Config) *Service {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	if config.ResumeTimeout <= 0 {
		config.ResumeTimeout = defaultResumeTimeout
	}

	return &Service{
		backends: backends,
		recorder: recorder,
		config:   config,
	}
}

// analyzes an essay; undecodable replies degrade to a summary-only result
func (s *Service) RunAnalysis(ctx context.Context, provider llm.Provider, in AnalysisInput) (*AnalysisResult, error) {
	if strings.TrimSpace(in.Text) == "" && strings.TrimSpace(in.Instruction) == "" {
		return nil, fmt.Errorf("%w: text or instruction", ErrEmptyInput)
	}

	text, err := s.complete(ctx, provider, OperationAnalysis, s.config.Timeout, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: buildAnalysisPrompt(in)}},
		Temperature: analysisTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	result := parseAnalysis(text)
	if result.Fallback {
		logger.Warn("analysis reply was not valid JSON, using fallback",
			"provider", provider,
			"length", len(text),
		)
	}

	return result, nil
}

func (s *Service) SendChat(ctx context.Context, provider llm.Provider, in ChatInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", fmt.Errorf("%w: message", ErrEmptyInput)
	}

	messages := make([]llm.Message, 0, len(in.History)+1)
	for _, m := range in.History {
		if m.Content == "" || (m.Role != "user" && m.Role != "assistant") {
			continue
		}

		messages = append(messages, m)
	}

	messages = append(messages, llm.Message{Role: "user", Content: in.Message})

	return s.complete(ctx, provider, OperationChat, s.config.Timeout, llm.Request{
		System:      buildChatSystemPrompt(in.Message, in.DocumentContent),
		Messages:    messages,
		Temperature: chatTemperature,
	})
}

func (s *Service) GetInsight(ctx context.Context, provider llm.Provider, paragraph string) (string, error) {
	if strings.TrimSpace(paragraph) == "" {
		return "", fmt.Errorf("%w: text", ErrEmptyInput)
	}

	return s.complete(ctx, provider, OperationInsight, s.config.Timeout, llm.Request{
		System:      buildInsightPrompt(paragraph),
		Messages:    []llm.Message{{Role: "user", Content: "Analyze this paragraph: \n" + quote(paragraph)}},
		Temperature: insightTemperature,
	})
}

// extracts a structured profile from resume text under the shorter resume timeout
func (s *Service) ParseResume(ctx context.Context, provider llm.Provider, resume string) (*ResumeProfile, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, fmt.Errorf("%w: text", ErrEmptyInput)
	}

	text, err := s.complete(ctx, provider, OperationResume, s.config.ResumeTimeout, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: buildResumePrompt(resume)}},
		Temperature: resumeTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	return parseResume(text)
}

func (s *Service) complete(ctx context.Context, provider llm.Provider, operation string, timeout time.Duration, req llm.Request) (string, error) {
	backend, err := s.backends.Get(provider)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := backend.Complete(callCtx, req)

	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = ErrEmptyOutput
	}

	err = classify(ctx, callCtx, err)
	s.observe(provider, operation, err, time.Since(start))

	if err != nil {
		return "", err
	}

	logger.Debug("llm call completed",
		"provider", provider,
		"operation", operation,
		"model", backend.Model(),
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)

	return resp.Text, nil
}

// separates caller cancellation and deadline expiry from provider failures
func classify(parent, call context.Context, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(parent.Err(), context.Canceled) {
		return ErrCancelled
	}

	if parent.Err() != nil || errors.Is(call.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	return err
}

func (s *Service) observe(provider llm.Provider, operation string, err error, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}

	outcome := "success"

	switch {
	case errors.Is(err, ErrCancelled):
		outcome = "cancelled"
	case errors.Is(err, ErrTimeout):
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	}

	s.recorder.ObserveLLM(string(provider), operation, outcome, elapsed)
}
