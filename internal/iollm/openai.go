package iollm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bikeq/bikeq/pkg/synth"
)

// maxBody caps the amount of an error body kept for logs.
const maxBody = 512

// OpenAI talks to any endpoint that implements OpenAI chat completions.
type OpenAI struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenAI creates a client. A nil http.Client means
// http.DefaultClient; deadlines come from the request context.
func NewOpenAI(
	baseURL, apiKey, model string,
	temperature float64,
	client *http.Client,
) *OpenAI {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAI{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		client:      client,
	}
}

// Generate sends the prompt as a system and a user message and returns
// the content of the first choice.
func (o *OpenAI) Generate(ctx context.Context, p synth.Prompt) ([]byte, error) {
	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
		Temperature:    o.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, RequestError(ProviderOpenAI, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, o.baseURL+"/chat/completions",
		bytes.NewReader(data),
	)
	if err != nil {
		return nil, RequestError(ProviderOpenAI, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, RequestError(ProviderOpenAI, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, RequestError(ProviderOpenAI, err)
	}

	var res chatResponse
	jsonErr := json.Unmarshal(body, &res)
	if resp.StatusCode != http.StatusOK {
		detail := truncate(string(body))
		if jsonErr == nil && res.Error != nil {
			detail = res.Error.Message
		}
		return nil, ResponseError(ProviderOpenAI, resp.StatusCode, detail)
	}
	if jsonErr != nil {
		return nil, ResponseError(ProviderOpenAI, resp.StatusCode,
			fmt.Sprintf("cannot decode body: %s", jsonErr))
	}
	if len(res.Choices) == 0 {
		return nil, ResponseError(ProviderOpenAI, resp.StatusCode, "no choices")
	}
	return []byte(res.Choices[0].Message.Content), nil
}

func truncate(s string) string {
	if len(s) <= maxBody {
		return s
	}
	return s[:maxBody] + "..."
}
