package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fashionlens-backend/internal/shared/telemetry"
	"fashionlens-backend/internal/vision"
)

var baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

const (
	defaultModel   = "gemini-pro-vision"
	defaultTimeout = 60 * time.Second
)

const analysisPrompt = `
You are a fashion analysis AI. Analyze this outfit image and provide detailed feedback in JSON format.
Include the following information:
- overallScore: A score from 1-10 rating the outfit's overall appeal
- style: The style category (e.g., Casual, Formal, Business Casual, Smart Casual, etc.)
- colorHarmony: A score from 1-100 rating the color coordination
- fit: A score from 1-100 rating how well the clothes fit
- occasion: An array of suitable occasions for this outfit
- bodyShape: The body shape this outfit works best for
- fabrics: An array of detected fabric types
- brands: An array of detected or likely brands
- sustainability: An object with "score" (1-100) and "feedback" (string explanation)
- recommendations: An array of 3-5 specific recommendations to improve the outfit

Return ONLY the JSON object with no additional text.
`

// Client implements vision.Analyzer against the Gemini generateContent API.
// Any failure along the way yields a fallback result instead of an error.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	fallback   *vision.Fallback
}

// NewClient constructs a Gemini analyzer. An empty apiKey is allowed: every
// call then serves fallback results, which keeps local development working.
func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
		fallback:   vision.NewFallback(),
	}
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze encodes the images, calls Gemini once, and parses the result.
// Missing key, unusable images, transport errors, non-200 responses, and
// malformed output all degrade to a generated fallback.
func (c *Client) Analyze(ctx context.Context, images [][]byte) (vision.OutfitAnalysis, bool) {
	if c.apiKey == "" {
		telemetry.Warn("gemini.no_api_key", nil)
		return c.fallback.Generate(), true
	}

	parts := []requestPart{{Text: analysisPrompt}}
	encoded := 0
	for i, img := range images {
		payload, err := vision.EncodeImagePayload(img)
		if err != nil {
			telemetry.Warn("gemini.image_encode_failed", map[string]any{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		parts = append(parts, requestPart{
			InlineData: &inlineData{MimeType: "image/jpeg", Data: payload},
		})
		encoded++
	}
	if encoded == 0 {
		return c.fallback.Generate(), true
	}

	result, err := c.generate(ctx, parts)
	if err != nil {
		telemetry.Warn("gemini.request_failed", map[string]any{"error": err.Error()})
		return c.fallback.Generate(), true
	}
	return vision.Normalize(result), false
}

func (c *Client) generate(ctx context.Context, parts []requestPart) (vision.OutfitAnalysis, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:     0.4,
			TopK:            32,
			TopP:            1,
			MaxOutputTokens: 4096,
		},
	})
	if err != nil {
		return vision.OutfitAnalysis{}, err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return vision.OutfitAnalysis{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return vision.OutfitAnalysis{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return vision.OutfitAnalysis{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return vision.OutfitAnalysis{}, fmt.Errorf("gemini status %d: %s", resp.StatusCode, truncate(string(respBody), 256))
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return vision.OutfitAnalysis{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return vision.OutfitAnalysis{}, fmt.Errorf("no candidates in response")
	}

	return parseAnalysisText(decoded.Candidates[0].Content.Parts[0].Text)
}

// parseAnalysisText extracts the JSON object from model output, which may be
// wrapped in prose or code fences.
func parseAnalysisText(text string) (vision.OutfitAnalysis, error) {
	var result vision.OutfitAnalysis

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &result); err == nil {
			return result, nil
		}
	}

	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return vision.OutfitAnalysis{}, fmt.Errorf("parse analysis JSON: %w", err)
	}
	return result, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ vision.Analyzer = (*Client)(nil)
