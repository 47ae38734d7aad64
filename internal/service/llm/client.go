package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
	applogger "StockPulse/pkg/logger"
)

// Options tunes a Client independently of the endpoint it talks to.
type Options struct {
	Timeout       time.Duration
	RatePerMinute int
	Burst         int
}

// Client is a ModelAnalyst backed by an OpenAI-compatible chat endpoint.
// All providers in use (OpenAI, Anthropic via proxy, local gateways) speak
// this wire format, so one client covers every configured analyst.
type Client struct {
	name    string
	model   string
	client  *openai.Client
	limiter *rate.Limiter
	timeout time.Duration
	logger  *applogger.Logger
}

// NewClient builds an analyst for one endpoint. name keys the ensemble
// weight table and must stay stable across restarts.
func NewClient(name, baseURL, apiKey, model string, opts Options, log *applogger.Logger) *Client {
	ocfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		ocfg.BaseURL = baseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	perMinute := opts.RatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		name:    name,
		model:   model,
		client:  openai.NewClientWithConfig(ocfg),
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		timeout: timeout,
		logger:  log,
	}
}

func (c *Client) Name() string { return c.name }

// Analyze sends the stock dossier to the model and parses the structured
// verdict. The rate limiter blocks until a slot is free or the context ends.
func (c *Client) Analyze(ctx context.Context, req models.AnalystRequest) (models.ModelAnalysisResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.ModelAnalysisResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt := BuildUserPrompt(req)

	c.logger.Debug("sending analysis request",
		applogger.String("analyst", c.name),
		applogger.String("symbol", req.Symbol),
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return models.ModelAnalysisResult{}, fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return models.ModelAnalysisResult{}, fmt.Errorf("%s returned no choices", c.name)
	}

	raw := resp.Choices[0].Message.Content
	result, err := ParseAnalysis(raw)
	if err != nil {
		return models.ModelAnalysisResult{}, fmt.Errorf("parse %s response: %w", c.name, err)
	}

	// The model name on the result is ours, not whatever the provider echoed.
	result.Model = c.name
	return result, nil
}

var _ domsvc.ModelAnalyst = (*Client)(nil)
