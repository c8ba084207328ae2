package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/desertthunder/tabernacle/internal/audio"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type part struct {
	Text       string      `json:"text,omitempty"`
	Thought    bool        `json:"thought,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type speechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generationConfig struct {
	ResponseMimeType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema         `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig   `json:"speechConfig,omitempty"`
	ThinkingConfig     *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// text joins the non-thought text parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// audioData returns the first inline payload of the first candidate.
func (r *generateResponse) audioData() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return p.InlineData.Data
		}
	}
	return ""
}

// GeminiClient implements [Assistant] over the generateContent REST endpoint.
type GeminiClient struct {
	client      *resty.Client
	limiter     *rate.Limiter
	tokens      oauth2.TokenSource
	apiKey      string
	chatModel   string
	textModel   string
	speechModel string
	voice       string
	logger      *log.Logger
}

// NewGeminiClient builds a client from cfg. A zero RequestsPerSecond disables pacing.
func NewGeminiClient(cfg shared.AssistantConfig, logger *log.Logger) *GeminiClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	var ts oauth2.TokenSource
	if cfg.AccessToken != "" {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
	}

	return &GeminiClient{
		client:      c,
		limiter:     rate.NewLimiter(limit, 1),
		tokens:      ts,
		apiKey:      cfg.APIKey,
		chatModel:   orDefault(cfg.ChatModel, "gemini-3-pro-preview"),
		textModel:   orDefault(cfg.TextModel, "gemini-3-flash-preview"),
		speechModel: orDefault(cfg.SpeechModel, "gemini-2.5-flash-preview-tts"),
		voice:       orDefault(cfg.Voice, "Kore"),
		logger:      logger,
	}
}

// Configured reports whether credentials are present.
func (g *GeminiClient) Configured() bool {
	return g.apiKey != "" || g.tokens != nil
}

func (g *GeminiClient) request(ctx context.Context) (*resty.Request, error) {
	if !g.Configured() {
		return nil, fmt.Errorf("%w: set assistant.api_key or GEMINI_API_KEY", shared.ErrMissingCredentials)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := g.client.R().SetContext(ctx)
	if g.apiKey != "" {
		req.SetHeader("x-goog-api-key", g.apiKey)
	} else {
		tok, err := g.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
		}
		req.SetAuthToken(tok.AccessToken)
	}
	return req, nil
}

func (g *GeminiClient) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	req, err := g.request(ctx)
	if err != nil {
		return nil, err
	}

	var out generateResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(model))
	resp, err := req.SetBody(&body).SetResult(&out).Post(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode(), truncate(resp.String(), 200))
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", shared.ErrAPIRequest, out.PromptFeedback.BlockReason)
	}

	if g.logger != nil {
		g.logger.Debug("generateContent", "model", model, "status", resp.StatusCode(), "elapsed", resp.Time())
	}
	return &out, nil
}

func (g *GeminiClient) generateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.generate(ctx, model, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

func (g *GeminiClient) generateJSON(ctx context.Context, prompt string, s *schema, v any) error {
	resp, err := g.generate(ctx, g.textModel, generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: s},
	})
	if err != nil {
		return err
	}

	raw := resp.text()
	if raw == "" {
		return fmt.Errorf("%w: empty reply", shared.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return nil
}

func (g *GeminiClient) Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, content{Role: string(m.Role), Parts: []part{{Text: m.Content}}})
	}
	contents = append(contents, content{Role: string(models.RoleUser), Parts: []part{{Text: message}}})

	resp, err := g.generate(ctx, g.chatModel, generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: persona}}},
		GenerationConfig:  &generationConfig{ThinkingConfig: &thinkingConfig{ThinkingBudget: chatThinkingBudget}},
	})
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

func (g *GeminiClient) QuizQuestion(ctx context.Context, difficulty string) (models.QuizQuestion, error) {
	var q models.QuizQuestion
	if err := g.generateJSON(ctx, quizPrompt(difficulty), quizSchema, &q); err != nil {
		return models.QuizQuestion{}, err
	}
	if err := q.Validate(); err != nil {
		return models.QuizQuestion{}, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return q, nil
}

func (g *GeminiClient) ChapterText(ctx context.Context, book string, chapter int) ([]models.Verse, error) {
	var out struct {
		Verses []models.Verse `json:"verses"`
	}
	if err := g.generateJSON(ctx, chapterTextPrompt(book, chapter), chapterSchema, &out); err != nil {
		return nil, err
	}
	return out.Verses, nil
}

func (g *GeminiClient) ChapterExplanation(ctx context.Context, book string, chapter int) (string, error) {
	return g.generateText(ctx, g.textModel, explanationPrompt(book, chapter))
}

func (g *GeminiClient) Meditation(ctx context.Context, verse string) (string, error) {
	return g.generateText(ctx, g.textModel, meditationPrompt(verse))
}

func (g *GeminiClient) PhotoCaption(ctx context.Context, description string) (string, error) {
	return g.generateText(ctx, g.textModel, captionPrompt(description))
}

func (g *GeminiClient) Narrate(ctx context.Context, text string) ([]byte, error) {
	cfg := &generationConfig{ResponseModalities: []string{"AUDIO"}, SpeechConfig: &speechConfig{}}
	cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = g.voice

	resp, err := g.generate(ctx, g.speechModel, generateRequest{
		Contents:         []content{{Parts: []part{{Text: narrationPrompt(text)}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return nil, err
	}
	return audio.DecodeBase64PCM(resp.audioData(), audio.Speech)
}

// Ping measures the round trip of a model listing request.
func (g *GeminiClient) Ping(ctx context.Context) (time.Duration, error) {
	req, err := g.request(ctx)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := req.SetQueryParam("pageSize", "1").Get("/v1beta/models")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode())
	}
	return time.Since(start), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
