package analysis

import (
	"context"

	"codeberg.org/scholargo/server/internal/advisor"
	"codeberg.org/scholargo/server/internal/llm"
	"codeberg.org/scholargo/server/scholargo/chats"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
)

// implemented by advisor.Service
type Advisor interface {
	RunAnalysis(ctx context.Context, provider llm.Provider, in advisor.AnalysisInput) (*advisor.AnalysisResult, error)
	SendChat(ctx context.Context, provider llm.Provider, in advisor.ChatInput) (string, error)
	GetInsight(ctx context.Context, provider llm.Provider, paragraph string) (string, error)
	ParseResume(ctx context.Context, provider llm.Provider, resume string) (*advisor.ResumeProfile, error)
}

// implemented by quota.Ledger
type Ledger interface {
	CheckQuota(ctx context.Context, userID string, feature profiles.Feature) (*quota.Decision, error)
	IncrementUsage(ctx context.Context, userID string, feature profiles.Feature) (int, error)
}

// implemented by chats.Repository
type ChatStore interface {
	AddMessage(ctx context.Context, sessionID, userID, role, content string) (*chats.Message, error)
	CountMessages(ctx context.Context, sessionID, userID string) (int, error)
	RenameSession(ctx context.Context, sessionID, userID, title string) (*chats.Session, error)
}

type AnalyzeRequest struct {
	Text        string `json:"text"`
	Instruction string `json:"instruction,omitempty"`
	Context     string `json:"context,omitempty"`
	Provider    string `json:"provider,omitempty" example:"openai"`
}

type AnalyzeResponse struct {
	Result *advisor.AnalysisResult `json:"result"`
	Quota  *quota.Decision         `json:"quota"`
}

type ChatRequest struct {
	Message         string        `json:"message"`
	History         []llm.Message `json:"history"`
	DocumentContent string        `json:"document_content"`
	Provider        string        `json:"provider,omitempty" example:"openai"`
	SessionID       string        `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Result string          `json:"result"`
	Quota  *quota.Decision `json:"quota"`
}

type InsightRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty" example:"openai"`
}

type InsightResponse struct {
	Result string `json:"result"`
}

type ResumeRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty" example:"openai"`
}

type ResumeResponse struct {
	Result *advisor.ResumeProfile `json:"result"`
}
