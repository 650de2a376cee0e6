package advisor

import (
	"errors"
	"time"

	"codeberg.org/scholargo/server/internal/llm"
)

var (
	ErrCancelled    = errors.New("request cancelled")
	ErrTimeout      = errors.New("request timed out")
	ErrEmptyInput   = errors.New("input is required")
	ErrEmptyOutput  = errors.New("provider returned an empty response")
	ErrInvalidReply = errors.New("provider reply is not valid JSON")
)

// operation names used for metrics and logs
const (
	OperationAnalysis = "analysis"
	OperationChat     = "chat"
	OperationInsight  = "insight"
	OperationResume   = "resume"
)

type AnalysisInput struct {
	Text        string
	Instruction string
	Context     string // excerpt the instruction applies to
}

type ChatInput struct {
	Message         string
	History         []llm.Message
	DocumentContent string
}

type DocumentClassification struct {
	PrimaryType       string       `json:"primaryType"`
	SecondaryElements LooseStrings `json:"secondaryElements"`
	Reasoning         string       `json:"reasoning"`
	Confidence        string       `json:"confidence"`
	StructuralSignals LooseStrings `json:"structuralSignals"`
}

type DeepAnalysis struct {
	OverallAssessment string `json:"overallAssessment"`
	Authenticity      struct {
		Strengths string `json:"strengths"`
		Evidence  string `json:"evidence"`
	} `json:"authenticity"`
	Structure struct {
		Type string `json:"type"`
		Flow string `json:"flow"`
	} `json:"structure"`
	Values struct {
		DetectedValues string `json:"detectedValues"`
		Alignment      string `json:"alignment"`
	} `json:"values"`
	StrategicImprovements LooseStrings `json:"strategicImprovements"`
}

type Paragraph struct {
	ParagraphNumber  LooseInt `json:"paragraph_number"`
	DetectedSubtitle *string  `json:"detected_subtitle"`
	FunctionalLabel  string   `json:"functional_label"`
	SectionLabel     string   `json:"section_label"`
	AnalysisCurrent  string   `json:"analysis_current"`
	MainIdea         string   `json:"main_idea"`
	EvidenceQuote    string   `json:"evidence_quote"`
	EvidenceLocation string   `json:"evidence_location"`
	Strength         string   `json:"strength"`
	Status           string   `json:"status"`
}

// normalized analysis result, identical regardless of backend
type AnalysisResult struct {
	DocumentClassification *DocumentClassification `json:"documentClassification,omitempty"`
	DeepAnalysis           *DeepAnalysis           `json:"deepAnalysis,omitempty"`
	GlobalSummary          string                  `json:"globalSummary"`
	ParagraphBreakdown     []Paragraph             `json:"paragraphBreakdown"`

	// set when the provider reply could not be decoded and GlobalSummary holds the raw text
	Fallback bool `json:"fallback,omitempty"`
}

type ResumeProfile struct {
	FullName         string       `json:"full_name"`
	TopSkills        LooseStrings `json:"top_skills"`
	LatestExperience struct {
		Title          string `json:"title"`
		Organization   string `json:"organization"`
		KeyAchievement string `json:"key_achievement"`
	} `json:"latest_experience"`
	SocialProblemContext struct {
		ProblemStatement string     `json:"problem_statement"`
		RelevanceScore   LooseFloat `json:"relevance_score"`
	} `json:"social_problem_context"`
	AIIdentityLabel string `json:"ai_identity_label"`
}

// receives one observation per provider call
type Recorder interface {
	ObserveLLM(provider, operation, outcome string, elapsed time.Duration)
}

type Config struct {
	Timeout       time.Duration
	ResumeTimeout time.Duration
}
