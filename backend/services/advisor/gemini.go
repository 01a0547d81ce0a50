package advisor

import (
	"context"
	"errors"
	"fmt"

	"learnhub/backend/config"
	"learnhub/backend/utils"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("AI backend returned an empty response")

// GeminiGenerator calls the Gemini API. Calls fail fast while the breaker is
// open; nothing is retried.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	gen     *genai.GenerateContentConfig
	breaker *gobreaker.CircuitBreaker[string]
	log     *utils.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg *config.Config, log *utils.Logger) (*GeminiGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	g := &GeminiGenerator{
		client: client,
		model:  cfg.GeminiModel,
		gen:    generationConfig(),
		log:    log.With("component", "GeminiGenerator"),
	}
	g.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "gemini",
		Timeout: cfg.AIBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.AIBreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.log.Warn("AI circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return g, nil
}

func generationConfig() *genai.GenerateContentConfig {
	threshold := genai.HarmBlockThresholdBlockMediumAndAbove
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.6),
		TopK:            genai.Ptr[float32](1),
		TopP:            genai.Ptr[float32](1),
		MaxOutputTokens: 2048,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: threshold},
			{Category: genai.HarmCategoryHateSpeech, Threshold: threshold},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: threshold},
			{Category: genai.HarmCategoryDangerousContent, Threshold: threshold},
		},
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.breaker.Execute(func() (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.gen)
		if err != nil {
			return "", err
		}
		text := resp.Text()
		if text == "" {
			return "", errEmptyResponse
		}
		return text, nil
	})
}
