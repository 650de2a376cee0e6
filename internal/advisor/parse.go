package advisor

import (
	"encoding/json"
	"strings"
)

// removes markdown code fences some providers wrap around JSON
func stripFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// splits a reply into its top-level fields; false when it is not a JSON object
func decodeObject(raw string) (map[string]json.RawMessage, bool) {
	cleaned := []byte(stripFences(raw))
	if !json.Valid(cleaned) {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(cleaned, &fields); err != nil || fields == nil {
		return nil, false
	}

	return fields, true
}

// decodes one field into dst, leaving dst untouched when the value does not fit
func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}

	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// decodes an analysis reply, degrading to a summary-only result when it is not a JSON object
func parseAnalysis(raw string) *AnalysisResult {
	fields, ok := decodeObject(raw)
	if !ok {
		return &AnalysisResult{
			GlobalSummary:      raw,
			ParagraphBreakdown: []Paragraph{},
			Fallback:           true,
		}
	}

	result := &AnalysisResult{ParagraphBreakdown: []Paragraph{}}
	decodeField(fields, "documentClassification", &result.DocumentClassification)
	decodeField(fields, "deepAnalysis", &result.DeepAnalysis)
	decodeField(fields, "globalSummary", &result.GlobalSummary)

	var paragraphs []json.RawMessage
	decodeField(fields, "paragraphBreakdown", &paragraphs)
	for _, item := range paragraphs {
		var p Paragraph
		if err := json.Unmarshal(item, &p); err == nil {
			result.ParagraphBreakdown = append(result.ParagraphBreakdown, p)
		}
	}

	return result
}

func parseResume(raw string) (*ResumeProfile, error) {
	fields, ok := decodeObject(raw)
	if !ok {
		return nil, ErrInvalidReply
	}

	var profile ResumeProfile
	decodeField(fields, "full_name", &profile.FullName)
	decodeField(fields, "top_skills", &profile.TopSkills)
	decodeField(fields, "latest_experience", &profile.LatestExperience)
	decodeField(fields, "social_problem_context", &profile.SocialProblemContext)
	decodeField(fields, "ai_identity_label", &profile.AIIdentityLabel)

	return &profile, nil
}
