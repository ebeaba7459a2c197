// Package genai sends file content to a locally hosted generative-model
// endpoint (Ollama's generate API) and returns the model's free-text review
// verbatim. No structure is imposed on the output and no retry is performed;
// a failed call is reported to the caller so it can degrade just that file.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "codellama:7b"
	defaultTimeout = 120 * time.Second
)

const promptPrefix = "Review the following TypeScript code for issues, bugs, or improvements:\n\n"

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Client talks to the generative-model endpoint.
type Client struct {
	client  *resty.Client
	baseURL string
	model   string
}

// NewClient builds a Client from the supplied viper instance, falling back to
// the local Ollama defaults.
func NewClient(v *viper.Viper) *Client {
	baseURL := v.GetString("ai.base_url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := v.GetString("ai.model")
	if model == "" {
		model = defaultModel
	}
	timeout := v.GetDuration("ai.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

// Review asks the model for a free-text review of content and returns the
// response text verbatim.
func (c *Client) Review(ctx context.Context, content string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  c.model,
			Prompt: promptPrefix + content,
			Stream: false,
		}).
		Post(c.baseURL + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("genai: request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("genai: HTTP %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("genai: malformed response: %w", err)
	}
	return out.Response, nil
}
