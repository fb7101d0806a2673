package iollm

import (
	"context"
	"errors"

	"github.com/bikeq/bikeq/pkg/synth"
	"google.golang.org/genai"
)

// Gemini generates SQL with Google's Gemini models.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a client for the Gemini API.
func NewGemini(
	ctx context.Context,
	apiKey, model string,
	temperature float64,
) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ConfigError(ProviderGemini, err.Error())
	}
	return &Gemini{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Generate asks for a JSON answer to the prompt.
func (g *Gemini) Generate(ctx context.Context, p synth.Prompt) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(p.User, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		ResponseMIMEType:  "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, RequestError(ProviderGemini, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ResponseError(ProviderGemini, 200, "no candidates")
	}
	return []byte(resp.Text()), nil
}
