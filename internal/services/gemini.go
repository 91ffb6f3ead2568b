package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wrapped/internal/models"
	"github.com/desertthunder/wrapped/internal/shared"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.5-pro"
	DefaultYear        = 2025
)

// contentGenerator is the subset of [genai.Models] used by [GeminiService].
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOptions configures a [GeminiService].
type GeminiOptions struct {
	APIKey          string
	Model           string
	SearchGrounding bool
	Timeout         time.Duration
	Year            int
}

// GeminiService implements [Fetcher] with a single Gemini generation per fetch.
type GeminiService struct {
	models contentGenerator
	opts   GeminiOptions
	logger *log.Logger
}

// NewGeminiService creates a Gemini API client for the given options.
func NewGeminiService(ctx context.Context, opts GeminiOptions, logger *log.Logger) (*GeminiService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is empty (set GEMINI_API_KEY)", shared.ErrMissingCredentials)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newGeminiService(client.Models, opts, logger), nil
}

func newGeminiService(models contentGenerator, opts GeminiOptions, logger *log.Logger) *GeminiService {
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}
	if opts.Year == 0 {
		opts.Year = DefaultYear
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &GeminiService{models: models, opts: opts, logger: logger}
}

func (g *GeminiService) Name() string { return "Gemini" }

// Fetch asks the model for a wrapped summary of profileURL.
func (g *GeminiService) Fetch(ctx context.Context, profileURL string) (*models.UserSummary, error) {
	logger := shared.WithLogger(g.logger, "profile", profileURL, "model", g.opts.Model)

	summary, err := g.fetch(ctx, profileURL)
	if err != nil {
		logger.Error("wrapped fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	logger.Info("wrapped fetch complete", "username", summary.Username, "slides", len(summary.Insights))
	return summary, nil
}

func (g *GeminiService) fetch(ctx context.Context, profileURL string) (*models.UserSummary, error) {
	if g.models == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", shared.ErrServiceUnavailable)
	}

	prompt, err := BuildPrompt(profileURL, g.opts.Year)
	if err != nil {
		return nil, err
	}

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	g.logger.Debug("generating with Gemini", "model", g.opts.Model, "grounding", g.opts.SearchGrounding)

	resp, err := g.models.GenerateContent(ctx, g.opts.Model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}, g.generateConfig())
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return nil, shared.ErrEmptyResponse
	}

	summary, err := decodeSummary(text)
	if err != nil {
		g.logger.Debug("undecodable response", "preview", shared.Truncate(text, 200))
		return nil, err
	}
	summary.ProfileURL = profileURL

	if err := summary.Validate(); err != nil {
		return nil, err
	}
	return summary, nil
}

// generateConfig requests structured output unless search grounding is on.
// Gemini 2.x rejects tools combined with a JSON response type.
func (g *GeminiService) generateConfig() *genai.GenerateContentConfig {
	temperature := float32(1)
	config := &genai.GenerateContentConfig{Temperature: &temperature}
	if g.opts.SearchGrounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
		return config
	}
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = wrappedSchema()
	return config
}

// wrappedSchema mirrors [models.UserSummary].
func wrappedSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"username":      str("Display name of the profile"),
			"generatedRank": str("A playful made-up rank for the year, e.g. 'iTrader İmparatoru'"),
			"realStats": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tradeCount": str("iTrader score"),
					"rank":       str("Forum rank"),
					"joinDate":   str("Join date"),
					"memberId":   str("Member ID"),
					"totalPosts": str("Total post count"),
				},
				Required: []string{"tradeCount", "rank", "joinDate"},
			},
			"insights": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       str("Slide title"),
						"content":     str("Slide body text"),
						"emoji":       str("A single emoji"),
						"bgColor":     str("Background color as #RRGGBB"),
						"textColor":   str("Text color as #RRGGBB"),
						"accentColor": str("Accent color as #RRGGBB"),
					},
					Required: []string{"title", "content", "emoji", "bgColor", "textColor", "accentColor"},
				},
			},
		},
		Required: []string{"username", "generatedRank", "realStats", "insights"},
	}
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.TrimSpace(strings.Join(texts, ""))
}

// decodeSummary parses a JSON document, tolerating a surrounding Markdown code fence.
func decodeSummary(text string) (*models.UserSummary, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cleaned), "```"))

	var summary models.UserSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", shared.ErrSchemaMismatch, err)
	}
	return &summary, nil
}
