package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

// Config holds the Gemini client settings
type Config struct {
	APIKey      string
	TextModel   string
	ReportModel string
	ImageModel  string
	Timeout     time.Duration

	// BaseURL and HTTPClient are overridden in tests
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Config) applyDefaults() {
	if c.TextModel == "" {
		c.TextModel = constants.DefaultTextModel
	}
	if c.ReportModel == "" {
		c.ReportModel = constants.DefaultReportModel
	}
	if c.ImageModel == "" {
		c.ImageModel = constants.DefaultImageModel
	}
	if c.Timeout <= 0 {
		c.Timeout = constants.DefaultAITimeout
	}
}

// GeminiClient implements Backend over the Gemini API
type GeminiClient struct {
	cfg    Config
	client *genai.Client
}

// NewGeminiClient creates a client for the Gemini API
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	cfg.applyDefaults()

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{cfg: cfg, client: client}, nil
}

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func stringListSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringSchema()}
}

var enrichSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"imagePrompt": stringSchema(),
		"poeticQuote": stringSchema(),
		"keywords":    stringListSchema(),
		"highlights":  stringListSchema(),
	},
	Required: []string{"imagePrompt", "poeticQuote", "keywords", "highlights"},
}

var reportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":    stringSchema(),
		"summary":  stringSchema(),
		"moodVibe": stringSchema(),
		"topKeywords": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text":  stringSchema(),
					"count": {Type: genai.TypeNumber},
				},
				Required: []string{"text", "count"},
			},
		},
		"personalNarratives": stringListSchema(),
		"visualTheme":        stringSchema(),
	},
	Required: []string{"title", "summary", "moodVibe", "topKeywords", "personalNarratives", "visualTheme"},
}

func (g *GeminiClient) generate(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		logger.Warn("Gemini request failed", "model", model, "elapsed", time.Since(start), "error", err)
		return nil, fmt.Errorf("gemini %s: %w", model, err)
	}
	logger.Debug("Gemini request finished", "model", model, "elapsed", time.Since(start))
	return resp, nil
}

// EnrichText extracts image prompt, caption, keywords and highlights
func (g *GeminiClient) EnrichText(ctx context.Context, text string) (models.Enrichment, error) {
	prompt, err := enrichPrompt(text)
	if err != nil {
		return models.Enrichment{}, err
	}

	resp, err := g.generate(ctx, g.cfg.TextModel, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   enrichSchema,
	})
	if err != nil {
		return models.Enrichment{}, err
	}
	return ParseEnrichment(resp.Text())
}

// SynthesizeImage returns the first generated image as a data URI
func (g *GeminiClient) SynthesizeImage(ctx context.Context, prompt string) (string, error) {
	resp, err := g.generate(ctx, g.cfg.ImageModel, prompt, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: constants.ImageAspectRatio},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return DataURI(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}

// SynthesizeReport writes the narrative part of a phase report
func (g *GeminiClient) SynthesizeReport(ctx context.Context, req ReportRequest) (models.ReportNarrative, error) {
	prompt, err := reportPrompt(req)
	if err != nil {
		return models.ReportNarrative{}, err
	}

	resp, err := g.generate(ctx, g.cfg.ReportModel, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   reportSchema,
	})
	if err != nil {
		return models.ReportNarrative{}, err
	}
	return ParseReport(resp.Text())
}
