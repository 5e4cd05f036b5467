// Package openai implements an llm.Provider against the OpenAI API and any
// OpenAI-compatible endpoint (configurable base URL).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/graphflow-ai/graphflow/llm"
	"github.com/graphflow-ai/graphflow/types"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds the provider settings.
type Config struct {
	APIKey string `yaml:"api_key" json:"api_key"`
	// BaseURL targets any OpenAI-compatible endpoint; defaults to the
	// official API.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Model is the chat/completion model, e.g. "gpt-4o-mini".
	Model string `yaml:"model" json:"model"`
	// EmbedModel is the embeddings model, e.g. "text-embedding-3-small".
	EmbedModel  string        `yaml:"embed_model" json:"embed_model"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	Temperature float32       `yaml:"temperature" json:"temperature"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// Provider is an OpenAI-compatible llm.Provider.
type Provider struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New creates a provider. The API key is required; everything else has
// workable defaults.
func New(cfg Config, logger *zap.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, types.NewError(types.ErrInvalidConfig, "openai api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "text-embedding-3-small"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With(zap.String("component", "openai_provider")),
	}, nil
}

func (p *Provider) Name() string { return "openai" }

// Complete generates a completion by sending the prompt as a single user
// chat turn.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
}

// Chat calls the chat completions endpoint.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	msgs := make([]chatMessage, len(messages))
	for i, m := range messages {
		msgs[i] = chatMessage{Role: string(m.Role), Content: m.Content}
	}

	var out chatResponse
	err := p.post(ctx, "/chat/completions", chatRequest{
		Model:       p.cfg.Model,
		Messages:    msgs,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", types.NewError(types.ErrProviderError, "openai returned no choices")
	}

	p.logger.Debug("chat completed",
		zap.String("model", out.Model),
		zap.Int("total_tokens", out.Usage.TotalTokens))

	return out.Choices[0].Message.Content, nil
}

// Embed calls the embeddings endpoint.
func (p *Provider) Embed(ctx context.Context, text string) ([]float64, error) {
	var out embeddingResponse
	err := p.post(ctx, "/embeddings", embeddingRequest{
		Model: p.cfg.EmbedModel,
		Input: text,
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, types.NewError(types.ErrProviderError, "openai returned no embeddings")
	}
	return out.Data[0].Embedding, nil
}

// EstimateTokens estimates the token count of text under the chat model.
func (p *Provider) EstimateTokens(text string) int {
	return llm.EstimateTokens(p.cfg.Model, text)
}

func (p *Provider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return llm.WrapProviderError(p.Name(), "encode request", err)
	}

	endpoint := strings.TrimRight(p.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return llm.WrapProviderError(p.Name(), "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return llm.WrapProviderError(p.Name(), "call "+path, err).WithRetryable(true)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.WrapProviderError(p.Name(), "read response", err).WithRetryable(true)
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(p.Name(), resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return llm.WrapProviderError(p.Name(), "decode response", err)
	}
	return nil
}

// statusError maps an HTTP failure to a structured error. Rate limits and
// upstream 5xx failures are retryable; auth and request errors are not.
func statusError(provider string, status int, body []byte) *types.Error {
	msg := readErrMsg(body)
	err := types.Errorf(types.ErrProviderError, "%s: status=%d msg=%s", provider, status, msg)
	switch {
	case status == http.StatusTooManyRequests:
		return err.WithRetryable(true)
	case status >= 500:
		return err.WithRetryable(true)
	default:
		return err
	}
}

func readErrMsg(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "unknown error"
	}
	return msg
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      chatMessage `json:"message"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

var _ llm.Provider = (*Provider)(nil)
