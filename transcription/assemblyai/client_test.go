package assemblyai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/summora/errors"
	"github.com/skillsenselab/summora/logger"
	"github.com/skillsenselab/summora/transcription"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Config{APIKey: "test-key", BaseURL: baseURL}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client
}

func TestUpload(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.assemblyai.com/upload/abc"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	url, err := client.Upload(context.Background(), []byte("RIFF audio"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url != "https://cdn.assemblyai.com/upload/abc" {
		t.Errorf("unexpected upload url %q", url)
	}
	if gotAuth != "test-key" {
		t.Errorf("expected raw api key in authorization header, got %q", gotAuth)
	}
	if gotContentType != "application/octet-stream" {
		t.Errorf("expected octet-stream content type, got %q", gotContentType)
	}
	if string(gotBody) != "RIFF audio" {
		t.Errorf("expected raw audio bytes, got %q", gotBody)
	}
}

func TestUploadMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Upload(context.Background(), []byte("x"))
	if !errors.HasCode(err, errors.ErrCodeUpstream) {
		t.Errorf("expected EXTERNAL_SERVICE_ERROR, got %v", err)
	}
}

func TestSubmit(t *testing.T) {
	var gotReq map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcript" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]string{"id": "tr_123", "status": "queued"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	id, err := client.Submit(context.Background(), "https://cdn/audio", transcription.SubmitOptions{
		WebhookURL:    "https://example.com/transcription-complete",
		SpeakerLabels: true,
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id != "tr_123" {
		t.Errorf("unexpected job id %q", id)
	}
	if gotReq["audio_url"] != "https://cdn/audio" {
		t.Errorf("unexpected audio_url %v", gotReq["audio_url"])
	}
	if gotReq["webhook_url"] != "https://example.com/transcription-complete" {
		t.Errorf("unexpected webhook_url %v", gotReq["webhook_url"])
	}
	if gotReq["speaker_labels"] != true {
		t.Errorf("expected speaker_labels true, got %v", gotReq["speaker_labels"])
	}
}

func TestSubmitOmitsEmptyWebhook(t *testing.T) {
	var gotReq map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]string{"id": "tr_123"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Submit(context.Background(), "https://cdn/audio", transcription.SubmitOptions{}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, present := gotReq["webhook_url"]; present {
		t.Error("expected webhook_url to be omitted when unset")
	}
}

func TestGetJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcript/tr_123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id":     "tr_123",
			"status": "completed",
			"text":   "the transcript",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	job, err := client.GetJob(context.Background(), "tr_123")
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if job.Status != transcription.StatusCompleted {
		t.Errorf("unexpected status %q", job.Status)
	}
	if job.Text != "the transcript" {
		t.Errorf("unexpected text %q", job.Text)
	}
}

func TestServerErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusNotImplemented)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetJob(context.Background(), "tr_123")
	if !errors.HasCode(err, errors.ErrCodeUpstream) {
		t.Errorf("expected EXTERNAL_SERVICE_ERROR, got %v", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.Upload(context.Background(), []byte("x"))
	if !errors.HasCode(err, errors.ErrCodeConnectionFailed) {
		t.Errorf("expected CONNECTION_FAILED, got %v", err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}, logger.NewDefault("test")); err == nil {
		t.Error("expected error for missing api key")
	}
}
