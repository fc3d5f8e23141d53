// Package ai wraps the Gemini generateContent REST API behind the
// SymptomAnalyzer interface the diagnosis service consumes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ameerdental/clinic-api/internal/model"
)

// SymptomAnalyzer turns free-text symptoms into a structured result. A
// malformed or empty model response is an error, never a default diagnosis.
type SymptomAnalyzer interface {
	AnalyzeSymptoms(ctx context.Context, symptoms string) (*model.DiagnosisResult, error)
}

const systemInstruction = "You are 'Ameer AI', an advanced dental consultant. " +
	"Provide professional clinical analysis, risk assessment, and recommended steps. " +
	"Your output must be in valid JSON format."

type GeminiConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

type GeminiClient struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	SystemInstruction content          `json:"system_instruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

// responseSchema pins the model to the DiagnosisResult shape.
var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"riskLevel": {"type": "STRING", "enum": ["High", "Medium", "Low"]},
		"analysis": {"type": "STRING"},
		"suggestions": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["riskLevel", "analysis", "suggestions"]
}`)

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) AnalyzeSymptoms(ctx context.Context, symptoms string) (*model.DiagnosisResult, error) {
	reqBody := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{
			{Parts: []part{{Text: "Perform a clinical analysis on the following dental case: " + symptoms}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read AI response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI service returned status %d", resp.StatusCode)
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return nil, fmt.Errorf("failed to decode AI response: %w", err)
	}

	text := candidateText(&gen)
	if text == "" {
		return nil, fmt.Errorf("the AI model returned an empty response")
	}

	return ParseDiagnosis(text)
}

func candidateText(gen *generateResponse) string {
	if len(gen.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range gen.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

// ParseDiagnosis decodes the model's structured output and rejects anything
// that doesn't match the contract.
func ParseDiagnosis(text string) (*model.DiagnosisResult, error) {
	var result model.DiagnosisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostic result: %w", err)
	}
	if !result.RiskLevel.Valid() {
		return nil, fmt.Errorf("diagnostic result has invalid risk level %q", result.RiskLevel)
	}
	if result.Analysis == "" {
		return nil, fmt.Errorf("diagnostic result is missing the analysis")
	}
	return &result, nil
}
