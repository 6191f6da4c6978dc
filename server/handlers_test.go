package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/summora/errors"
	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/pipeline"
	"github.com/skillsenselab/summora/summary"
)

// stubOrchestrator scripts pipeline behavior for handler tests.
type stubOrchestrator struct {
	mode            pipeline.Mode
	outcome         *pipeline.Outcome
	jobID           string
	err             error
	disposition     pipeline.Disposition
	processCalls    int
	submitCalls     int
	completionCalls int
	gotRecording    pipeline.Recording
	gotPayload      pipeline.CompletionPayload
}

func (s *stubOrchestrator) Mode() pipeline.Mode { return s.mode }

func (s *stubOrchestrator) Process(ctx context.Context, rec pipeline.Recording) (*pipeline.Outcome, error) {
	s.processCalls++
	s.gotRecording = rec
	return s.outcome, s.err
}

func (s *stubOrchestrator) SubmitAsync(ctx context.Context, rec pipeline.Recording) (string, error) {
	s.submitCalls++
	s.gotRecording = rec
	return s.jobID, s.err
}

func (s *stubOrchestrator) HandleCompletion(ctx context.Context, payload pipeline.CompletionPayload) pipeline.Disposition {
	s.completionCalls++
	s.gotPayload = payload
	return s.disposition
}

func newTestServer(t *testing.T, orch Orchestrator) *Server {
	t.Helper()
	cfg := Config{}
	cfg.ApplyDefaults()
	s := New(cfg, logger.NewDefault("test"))
	s.ApplyMiddleware()
	s.RegisterRoutes(orch)
	return s
}

func multipartRecording(t *testing.T, fieldName, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	part.Write(data)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestProcessVideoSync(t *testing.T) {
	orch := &stubOrchestrator{
		mode: pipeline.ModeSync,
		outcome: &pipeline.Outcome{
			TranscriptionTime: 4230 * time.Millisecond,
			Summary: &summary.Result{
				Summary:     []string{"Report due"},
				ActionItems: []string{"Alice: ship report"},
			},
		},
	}
	s := newTestServer(t, orch)

	body, contentType := multipartRecording(t, "recording", "meeting.wav", []byte("fake-audio"))
	req := httptest.NewRequest(http.MethodPost, "/process-video", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ProcessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Message != "Transcription and summary complete" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.TranscriptionTimeS != 4.2 {
		t.Errorf("expected rounded elapsed 4.2, got %v", resp.TranscriptionTimeS)
	}
	if orch.processCalls != 1 || orch.submitCalls != 0 {
		t.Errorf("expected sync dispatch, got process=%d submit=%d", orch.processCalls, orch.submitCalls)
	}
	if string(orch.gotRecording.Data) != "fake-audio" {
		t.Errorf("handler passed wrong recording data %q", orch.gotRecording.Data)
	}
	if orch.gotRecording.Filename != "meeting.wav" {
		t.Errorf("handler passed wrong filename %q", orch.gotRecording.Filename)
	}
}

func TestProcessVideoWebhookMode(t *testing.T) {
	orch := &stubOrchestrator{mode: pipeline.ModeWebhook, jobID: "job-2"}
	s := newTestServer(t, orch)

	body, contentType := multipartRecording(t, "recording", "meeting.wav", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/process-video", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp SubmitResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.TranscriptionID != "job-2" {
		t.Errorf("unexpected transcription id %q", resp.TranscriptionID)
	}
	if orch.submitCalls != 1 || orch.processCalls != 0 {
		t.Errorf("expected webhook dispatch, got process=%d submit=%d", orch.processCalls, orch.submitCalls)
	}
}

func TestProcessVideoMissingFile(t *testing.T) {
	orch := &stubOrchestrator{mode: pipeline.ModeSync}
	s := newTestServer(t, orch)

	req := httptest.NewRequest(http.MethodPost, "/process-video", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errors.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error.Code != errors.ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", resp.Error.Code)
	}
	if orch.processCalls != 0 && orch.submitCalls != 0 {
		t.Error("validation failure must not reach the orchestrator")
	}
}

func TestProcessVideoWrongFieldName(t *testing.T) {
	orch := &stubOrchestrator{mode: pipeline.ModeSync}
	s := newTestServer(t, orch)

	body, contentType := multipartRecording(t, "audio", "meeting.wav", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/process-video", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong field name, got %d", rec.Code)
	}
}

func TestProcessVideoUpstreamFailure(t *testing.T) {
	orch := &stubOrchestrator{
		mode: pipeline.ModeSync,
		err:  errors.Upstream("assemblyai", nil),
	}
	s := newTestServer(t, orch)

	body, contentType := multipartRecording(t, "recording", "a.wav", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/process-video", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp errors.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error.Code != errors.ErrCodeUpstream {
		t.Errorf("expected EXTERNAL_SERVICE_ERROR, got %s", resp.Error.Code)
	}
}

func TestProcessVideoTimeoutMapsTo504(t *testing.T) {
	orch := &stubOrchestrator{
		mode: pipeline.ModeSync,
		err:  errors.Timeout("transcription poll", 10*time.Minute),
	}
	s := newTestServer(t, orch)

	body, contentType := multipartRecording(t, "recording", "a.wav", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/process-video", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %d", rec.Code)
	}
}

func TestTranscriptionCompleteWebhook(t *testing.T) {
	orch := &stubOrchestrator{mode: pipeline.ModeWebhook, disposition: pipeline.DispositionProcessed}
	s := newTestServer(t, orch)

	payload := `{"transcript_id":"job-2","status":"completed","text":"the transcript"}`
	req := httptest.NewRequest(http.MethodPost, "/transcription-complete", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp WebhookResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "processed" {
		t.Errorf("expected processed, got %q", resp.Status)
	}
	if orch.gotPayload.Text != "the transcript" {
		t.Errorf("handler passed wrong payload %+v", orch.gotPayload)
	}
}

func TestTranscriptionCompleteMalformedBodyStill200(t *testing.T) {
	orch := &stubOrchestrator{mode: pipeline.ModeWebhook}
	s := newTestServer(t, orch)

	req := httptest.NewRequest(http.MethodPost, "/transcription-complete", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("webhook must never return non-2xx, got %d", rec.Code)
	}
	var resp WebhookResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "received" {
		t.Errorf("expected received for malformed body, got %q", resp.Status)
	}
	if orch.completionCalls != 0 {
		t.Error("malformed body must not reach the orchestrator")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubOrchestrator{mode: pipeline.ModeSync})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRoundSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4.23, 4.2},
		{4.25, 4.3},
		{0, 0},
		{59.999, 60},
	}
	for _, tt := range tests {
		if got := roundSeconds(tt.in); got != tt.want {
			t.Errorf("roundSeconds(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
