package server

import (
	"context"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/summora/errors"
	"github.com/skillsenselab/summora/pipeline"
	"github.com/skillsenselab/summora/version"
)

// Orchestrator is the pipeline surface the HTTP handlers depend on.
type Orchestrator interface {
	Mode() pipeline.Mode
	Process(ctx context.Context, rec pipeline.Recording) (*pipeline.Outcome, error)
	SubmitAsync(ctx context.Context, rec pipeline.Recording) (string, error)
	HandleCompletion(ctx context.Context, payload pipeline.CompletionPayload) pipeline.Disposition
}

// ProcessResponse is the success body for a synchronous pipeline run.
type ProcessResponse struct {
	Message            string  `json:"message"`
	TranscriptionTimeS float64 `json:"transcription_time_s"`
	Summary            any     `json:"summary"`
}

// SubmitResponse is the success body for an asynchronous submission.
type SubmitResponse struct {
	Message         string `json:"message"`
	TranscriptionID string `json:"transcription_id"`
}

// WebhookResponse acknowledges a provider webhook notification.
type WebhookResponse struct {
	Status string `json:"status"`
}

// RegisterRoutes mounts the service endpoints on the server's Gin engine.
func (s *Server) RegisterRoutes(orch Orchestrator) {
	s.engine.POST("/process-video", s.handleProcessVideo(orch))
	s.engine.POST("/transcription-complete", s.handleTranscriptionComplete(orch))
	s.engine.GET("/health", s.handleHealth)
}

// handleProcessVideo accepts a multipart upload under the "recording"
// field and dispatches on the configured pipeline mode.
func (s *Server) handleProcessVideo(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := readRecording(c)
		if err != nil {
			RespondWithError(c, err)
			return
		}

		switch orch.Mode() {
		case pipeline.ModeWebhook:
			jobID, err := orch.SubmitAsync(c.Request.Context(), rec)
			if err != nil {
				RespondWithError(c, err)
				return
			}
			c.JSON(http.StatusOK, SubmitResponse{
				Message:         "Transcription job submitted",
				TranscriptionID: jobID,
			})
		default:
			outcome, err := orch.Process(c.Request.Context(), rec)
			if err != nil {
				RespondWithError(c, err)
				return
			}
			c.JSON(http.StatusOK, ProcessResponse{
				Message:            "Transcription and summary complete",
				TranscriptionTimeS: roundSeconds(outcome.TranscriptionTime.Seconds()),
				Summary:            outcome.Summary,
			})
		}
	}
}

// handleTranscriptionComplete receives the provider's webhook callback.
// It always answers 200; a non-2xx would trigger the provider's own
// retry storms.
func (s *Server) handleTranscriptionComplete(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload pipeline.CompletionPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			s.log.Warn("unparseable webhook payload", map[string]interface{}{
				"error": err.Error(),
			})
			c.JSON(http.StatusOK, WebhookResponse{Status: string(pipeline.DispositionReceived)})
			return
		}

		disp := orch.HandleCompletion(c.Request.Context(), payload)
		c.JSON(http.StatusOK, WebhookResponse{Status: string(disp)})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "up",
		"version": version.Get().Version,
	})
}

// readRecording extracts the uploaded file from the multipart form.
func readRecording(c *gin.Context) (pipeline.Recording, error) {
	fileHeader, err := c.FormFile("recording")
	if err != nil {
		return pipeline.Recording{}, errors.MissingField("recording").WithCause(err)
	}
	if fileHeader.Filename == "" {
		return pipeline.Recording{}, errors.Validation("recording filename must not be empty")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return pipeline.Recording{}, errors.Validation("recording could not be read").WithCause(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return pipeline.Recording{}, errors.Validation("recording could not be read").WithCause(err)
	}

	return pipeline.Recording{
		Filename: fileHeader.Filename,
		Data:     data,
	}, nil
}

// roundSeconds rounds to one decimal place for the response body.
func roundSeconds(s float64) float64 {
	return math.Round(s*10) / 10
}
