package replygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"replyhub/internal/platform/logger"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel   = "gemini-1.5-pro"
	geminiTimeout = 30 * time.Second
)

const geminiPrompt = `You are a helpful assistant that generates friendly, personalized responses to comments. ` +
	`If you see that the comment includes a heart emoji (❤️) or mentions anything like "loving this" or "so good", respond with appreciation. ` +
	`Include 1-3 appropriate emojis at the end of your response (hearts, fire, etc.). Keep your response brief and conversational. ` +
	`Generate a reply to this comment from %s: %q`

type geminiPart struct {
	Text string `json:"text"`
}

type geminiMessage struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiMessage `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
		TopP            float64 `json:"topP"`
		TopK            int     `json:"topK"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Gemini generates replies through the generateContent REST endpoint
type Gemini struct {
	http    *http.Client
	apiKey  string
	baseURL string
	log     logger.Logger
}

// NewGemini builds a Gemini generator. baseURL is overridable for tests
func NewGemini(apiKey, baseURL string) *Gemini {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &Gemini{
		http:    &http.Client{Timeout: geminiTimeout},
		apiKey:  apiKey,
		baseURL: baseURL,
		log:     *logger.Named("gemini"),
	}
}

// Generate drafts a reply, degrading to FallbackReply on any failure
func (g *Gemini) Generate(ctx context.Context, comment, username string) string {
	var req geminiRequest
	req.Contents = []geminiMessage{{
		Role:  "user",
		Parts: []geminiPart{{Text: fmt.Sprintf(geminiPrompt, username, comment)}},
	}}
	req.GenerationConfig.Temperature = 0.8
	req.GenerationConfig.MaxOutputTokens = 150
	req.GenerationConfig.TopP = 0.95
	req.GenerationConfig.TopK = 40

	body, err := json.Marshal(req)
	if err != nil {
		g.log.Warn().Err(err).Msg("gemini marshal failed, using fallback")
		return FallbackReply
	}

	url := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", g.baseURL, geminiModel, g.apiKey)
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		g.log.Warn().Err(err).Msg("gemini new request failed, using fallback")
		return FallbackReply
	}
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(hreq)
	if err != nil {
		g.log.Warn().Err(err).Str("username", username).Msg("gemini request failed, using fallback")
		return FallbackReply
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		g.log.Warn().Int("status", resp.StatusCode).Str("body", string(tail)).Msg("gemini non-200, using fallback")
		return FallbackReply
	}

	var out geminiResponse
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return FallbackReply
	}
	if err := json.Unmarshal(b, &out); err != nil {
		g.log.Warn().Err(err).Msg("gemini decode failed, using fallback")
		return FallbackReply
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		g.log.Warn().Msg("gemini returned no candidates, using fallback")
		return FallbackReply
	}
	reply := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if reply == "" {
		return FallbackReply
	}
	return reply
}
