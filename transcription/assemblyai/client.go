// Package assemblyai implements the transcription backend for the
// AssemblyAI API. Audio is uploaded as raw bytes, then a transcript
// job is created against the returned upload URL and tracked by ID.
package assemblyai

import (
	"context"
	"net/http"

	"github.com/skillsenselab/summora/errors"
	"github.com/skillsenselab/summora/httpclient"
	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/transcription"
)

const providerName = "assemblyai"

// Client is the AssemblyAI transcription backend.
type Client struct {
	config Config
	http   *httpclient.Client
	log    *logger.Logger
}

var _ transcription.Client = (*Client)(nil)

// New creates an AssemblyAI client from the config.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc, err := httpclient.New(&httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, "authorization"),
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

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

// Upload sends raw audio bytes and returns the provider-hosted URL.
func (c *Client) Upload(ctx context.Context, audio []byte) (string, error) {
	resp, err := c.http.Do(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/upload",
		Headers: map[string]string{"Content-Type": "application/octet-stream"},
		Body:    audio,
	})
	if err != nil {
		return "", c.wrap("upload", err)
	}

	var out uploadResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", errors.Upstream(providerName, err)
	}
	if out.UploadURL == "" {
		return "", errors.Upstream(providerName, nil).WithDetail("reason", "missing upload_url")
	}

	c.log.Debug("audio uploaded", map[string]interface{}{"bytes": len(audio)})
	return out.UploadURL, nil
}

type submitRequest struct {
	AudioURL      string `json:"audio_url"`
	WebhookURL    string `json:"webhook_url,omitempty"`
	SpeakerLabels bool   `json:"speaker_labels"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Submit creates a transcript job for the uploaded audio.
func (c *Client) Submit(ctx context.Context, audioURL string, opts transcription.SubmitOptions) (string, error) {
	resp, err := c.http.Post(ctx, "/transcript", submitRequest{
		AudioURL:      audioURL,
		WebhookURL:    opts.WebhookURL,
		SpeakerLabels: opts.SpeakerLabels,
	})
	if err != nil {
		return "", c.wrap("submit", err)
	}

	var out transcriptResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", errors.Upstream(providerName, err)
	}
	if out.ID == "" {
		return "", errors.Upstream(providerName, nil).WithDetail("reason", "missing transcript id")
	}

	c.log.Info("transcription job created", map[string]interface{}{
		logger.FieldJobID: out.ID,
		"webhook":         opts.WebhookURL != "",
	})
	return out.ID, nil
}

// GetJob fetches the current state of a transcript job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*transcription.Job, error) {
	resp, err := c.http.Get(ctx, "/transcript/"+jobID)
	if err != nil {
		return nil, c.wrap("status", err)
	}

	var out transcriptResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, errors.Upstream(providerName, err)
	}

	return &transcription.Job{
		ID:     out.ID,
		Status: transcription.Status(out.Status),
		Text:   out.Text,
		Error:  out.Error,
	}, nil
}

// wrap converts transport-level failures into the service error taxonomy.
func (c *Client) wrap(operation string, err error) error {
	switch {
	case httpclient.IsTimeout(err):
		return errors.ConnectionFailed(providerName, err).WithDetail("operation", operation)
	case httpclient.IsConnection(err):
		return errors.ConnectionFailed(providerName, err).WithDetail("operation", operation)
	case httpclient.IsRateLimit(err):
		return errors.RateLimited(providerName).WithCause(err)
	default:
		return errors.Upstream(providerName, err).WithDetail("operation", operation)
	}
}
