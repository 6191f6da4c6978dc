// Package pipeline orchestrates the two-stage recording pipeline:
// upload and transcribe with one provider, then summarize the transcript
// with another. No state outlives a request; every run is independent.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/observability"
	"github.com/skillsenselab/summora/summary"
	"github.com/skillsenselab/summora/transcription"
	"github.com/skillsenselab/summora/validation"
)

const transcriptPreviewLen = 100

// Recording is an uploaded recording held for the duration of a request.
type Recording struct {
	Filename string
	Data     []byte
}

// Outcome is the result of a synchronous pipeline run.
type Outcome struct {
	// TranscriptionTime is the time spent waiting for the transcript.
	TranscriptionTime time.Duration
	// Summary is the structured summary of the transcript.
	Summary *summary.Result
}

// Disposition is the acknowledgement for a webhook notification.
type Disposition string

const (
	// DispositionReceived acknowledges a payload that carries no status.
	DispositionReceived Disposition = "received"
	// DispositionIgnored acknowledges a non-completed status. Interim
	// updates and liveness pings are expected and benign.
	DispositionIgnored Disposition = "ignored"
	// DispositionProcessed acknowledges a completed transcript whose
	// summarization was kicked off.
	DispositionProcessed Disposition = "processed"
)

// CompletionPayload mirrors the provider's webhook notification body.
type CompletionPayload struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
	Text         string `json:"text"`
}

// Pipeline sequences the transcription and summarization clients.
type Pipeline struct {
	cfg         Config
	transcriber transcription.Client
	summarizer  summary.Client
	log         *logger.Logger
	metrics     *observability.Metrics
}

// New creates a pipeline. Metrics may be nil.
func New(cfg Config, transcriber transcription.Client, summarizer summary.Client, log *logger.Logger, metrics *observability.Metrics) (*Pipeline, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:         cfg,
		transcriber: transcriber,
		summarizer:  summarizer,
		log:         log.WithComponent("pipeline"),
		metrics:     metrics,
	}, nil
}

// Mode returns the configured completion-tracking mode.
func (p *Pipeline) Mode() Mode {
	return p.cfg.Mode
}

// Process runs the synchronous pipeline: upload, submit, poll to a
// terminal status, then summarize. Any stage failure aborts the run;
// no partial result is returned.
func (p *Pipeline) Process(ctx context.Context, rec Recording) (*Outcome, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.process")
	defer span.End()
	start := time.Now()

	if err := validateRecording(rec); err != nil {
		return nil, err
	}

	jobID, err := p.startJob(ctx, rec, "")
	if err != nil {
		p.metrics.RecordRun(ctx, string(ModeSync), "error", time.Since(start))
		return nil, err
	}
	observability.SetSpanAttribute(ctx, "job_id", jobID)

	pollStart := time.Now()
	job, err := transcription.Poll(ctx, p.transcriber, jobID, transcription.PollConfig{
		Interval: p.cfg.PollInterval,
		Timeout:  p.cfg.PollTimeout,
		OnPoll: func(job *transcription.Job) {
			p.metrics.RecordPollCycle(ctx, string(job.Status))
			p.log.Debug("poll cycle", logger.Fields(
				logger.FieldJobID, jobID,
				logger.FieldStatus, string(job.Status),
			))
		},
	})
	elapsed := time.Since(pollStart)
	if err != nil {
		observability.SetSpanError(ctx, err)
		p.metrics.RecordRun(ctx, string(ModeSync), "error", time.Since(start))
		return nil, err
	}

	p.log.Info("transcription completed", logger.Fields(
		logger.FieldJobID, jobID,
		"elapsed_s", elapsed.Seconds(),
		"preview", preview(job.Text),
	))

	result, err := p.summarizer.Summarize(ctx, job.Text)
	if err != nil {
		observability.SetSpanError(ctx, err)
		p.metrics.RecordRun(ctx, string(ModeSync), "error", time.Since(start))
		return nil, err
	}

	p.metrics.RecordRun(ctx, string(ModeSync), "ok", time.Since(start))
	return &Outcome{
		TranscriptionTime: elapsed,
		Summary:           result,
	}, nil
}

// SubmitAsync runs the submission half of the webhook pipeline: upload,
// then submit with a callback URL. Returns the provider job ID.
func (p *Pipeline) SubmitAsync(ctx context.Context, rec Recording) (string, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.submit_async")
	defer span.End()

	if err := validateRecording(rec); err != nil {
		return "", err
	}

	jobID, err := p.startJob(ctx, rec, p.webhookURL())
	if err != nil {
		return "", err
	}

	p.log.Info("job submitted for webhook completion", logger.Fields(
		logger.FieldJobID, jobID,
	))
	return jobID, nil
}

// HandleCompletion processes a webhook notification. Non-completed
// statuses are acknowledged and discarded. Completed transcripts are
// summarized; the result is logged, not delivered, since there is no
// correlation back to the original submitter. Summarization failures
// are observable only in logs and never reach the provider.
func (p *Pipeline) HandleCompletion(ctx context.Context, payload CompletionPayload) Disposition {
	ctx, span := observability.StartSpan(ctx, "pipeline.handle_completion")
	defer span.End()

	log := p.log.WithFields(logger.Fields(
		logger.FieldJobID, payload.TranscriptID,
		logger.FieldStatus, payload.Status,
	))

	if payload.Status == "" {
		log.Debug("webhook without status acknowledged")
		p.metrics.RecordWebhook(ctx, string(DispositionReceived))
		return DispositionReceived
	}

	if transcription.Status(payload.Status) != transcription.StatusCompleted {
		log.Debug("webhook ignored")
		p.metrics.RecordWebhook(ctx, string(DispositionIgnored))
		return DispositionIgnored
	}

	result, err := p.summarizer.Summarize(ctx, payload.Text)
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Error("summarization failed for completed transcript", logger.Fields(
			logger.FieldError, err.Error(),
		))
	} else {
		log.Info("summary ready", logger.Fields(
			"bullets", len(result.Summary),
			"action_items", len(result.ActionItems),
		))
	}

	p.metrics.RecordWebhook(ctx, string(DispositionProcessed))
	return DispositionProcessed
}

// startJob uploads the recording and submits the transcription job.
func (p *Pipeline) startJob(ctx context.Context, rec Recording, webhookURL string) (string, error) {
	uploadURL, err := p.transcriber.Upload(ctx, rec.Data)
	if err != nil {
		return "", err
	}
	p.metrics.RecordProviderCall(ctx, p.transcriber.Name(), "upload", "ok")

	jobID, err := p.transcriber.Submit(ctx, uploadURL, transcription.SubmitOptions{
		WebhookURL:    webhookURL,
		SpeakerLabels: p.cfg.SpeakerLabels,
	})
	if err != nil {
		return "", err
	}
	p.metrics.RecordProviderCall(ctx, p.transcriber.Name(), "submit", "ok")

	return jobID, nil
}

func (p *Pipeline) webhookURL() string {
	return strings.TrimSuffix(p.cfg.PublicBaseURL, "/") + "/transcription-complete"
}

// validateRecording rejects missing or empty uploads before any
// outbound call is made.
func validateRecording(rec Recording) error {
	v := validation.New()
	v.Required("recording", rec.Filename)
	v.NotEmpty("recording", rec.Data)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// preview truncates transcript text for log lines.
func preview(text string) string {
	if len(text) <= transcriptPreviewLen {
		return text
	}
	return text[:transcriptPreviewLen] + "..."
}
