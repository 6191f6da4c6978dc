// Package gemini implements the summarization backend for the Google
// Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillsenselab/summora/errors"
	"github.com/skillsenselab/summora/httpclient"
	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/summary"
)

const providerName = "gemini"

const promptTemplate = "Based on the following meeting transcript, please provide:\n" +
	"1. A concise 3-5 bullet summary of key points, as a JSON array under the key \"summary\".\n" +
	"2. A list of action items with assignees if mentioned, as a JSON array under the key \"actionItems\".\n" +
	"Respond with a single JSON object containing exactly those two keys.\n\n" +
	"Transcript:\n---\n%s\n---"

// Client is the Gemini summarization backend.
type Client struct {
	config Config
	http   *httpclient.Client
	log    *logger.Logger
}

var _ summary.Client = (*Client)(nil)

// New creates a Gemini client from the config.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc, err := httpclient.New(&httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthQuery(cfg.APIKey, "key"),
		Retry:   httpclient.DefaultRetryConfig(),
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		config: cfg,
		http:   hc,
		log:    log.WithComponent(providerName),
	}, nil
}

// Name returns the backend name.
func (c *Client) Name() string { return providerName }

// IsAvailable reports whether the backend has credentials.
func (c *Client) IsAvailable() bool { return c.config.APIKey != "" }

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"response_mime_type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize produces a structured summary from transcript text.
func (c *Client) Summarize(ctx context.Context, transcript string) (*summary.Result, error) {
	req := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: fmt.Sprintf(promptTemplate, transcript)}}},
		},
		GenerationConfig: generationConfig{ResponseMIMEType: "application/json"},
	}

	path := fmt.Sprintf("/models/%s:generateContent", c.config.Model)
	resp, err := c.http.Post(ctx, path, req)
	if err != nil {
		if httpclient.IsConnection(err) || httpclient.IsTimeout(err) {
			return nil, errors.ConnectionFailed(providerName, err)
		}
		if httpclient.IsRateLimit(err) {
			return nil, errors.RateLimited(providerName).WithCause(err)
		}
		return nil, errors.Upstream(providerName, err)
	}

	var out generateResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, errors.Upstream(providerName, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, errors.Upstream(providerName, nil).WithDetail("reason", "no candidates in response")
	}

	raw := out.Candidates[0].Content.Parts[0].Text
	result, err := parseResult(raw)
	if err != nil {
		return nil, err
	}

	c.log.Debug("summary generated", map[string]interface{}{
		"bullets":      len(result.Summary),
		"action_items": len(result.ActionItems),
	})
	return result, nil
}

// parseResult decodes the model's JSON output. Models occasionally wrap
// JSON in markdown fences despite the response_mime_type hint.
func parseResult(raw string) (*summary.Result, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result summary.Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, errors.MalformedSummary(err).WithDetail("raw_length", len(raw))
	}
	return &result, nil
}
