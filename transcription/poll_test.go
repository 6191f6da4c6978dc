package transcription

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/skillsenselab/summora/errors"
)

// fakeClient walks through a scripted sequence of job states.
type fakeClient struct {
	jobs  []Job
	calls int
}

func (f *fakeClient) Name() string      { return "fake" }
func (f *fakeClient) IsAvailable() bool { return true }

func (f *fakeClient) Upload(ctx context.Context, audio []byte) (string, error) {
	return "https://fake/upload", nil
}

func (f *fakeClient) Submit(ctx context.Context, audioURL string, opts SubmitOptions) (string, error) {
	return "job-1", nil
}

func (f *fakeClient) GetJob(ctx context.Context, jobID string) (*Job, error) {
	job := f.jobs[f.calls]
	if f.calls < len(f.jobs)-1 {
		f.calls++
	}
	return &job, nil
}

func TestPollCompletes(t *testing.T) {
	client := &fakeClient{jobs: []Job{
		{ID: "job-1", Status: StatusQueued},
		{ID: "job-1", Status: StatusProcessing},
		{ID: "job-1", Status: StatusCompleted, Text: "hello world"},
	}}

	job, err := Poll(context.Background(), client, "job-1", PollConfig{Interval: time.Millisecond})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if job.Text != "hello world" {
		t.Errorf("unexpected transcript %q", job.Text)
	}
	if client.calls != 2 {
		t.Errorf("expected 3 polls, recorded %d transitions", client.calls)
	}
}

func TestPollProviderError(t *testing.T) {
	client := &fakeClient{jobs: []Job{
		{ID: "job-1", Status: StatusProcessing},
		{ID: "job-1", Status: StatusError, Error: "audio unreadable"},
	}}

	_, err := Poll(context.Background(), client, "job-1", PollConfig{Interval: time.Millisecond})
	if err == nil {
		t.Fatal("expected error for failed job")
	}
	if !errors.HasCode(err, errors.ErrCodeTranscriptionFailed) {
		t.Errorf("expected TRANSCRIPTION_FAILED, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["provider_error"] != "audio unreadable" {
		t.Errorf("expected provider error detail, got %v", appErr.Details)
	}
}

func TestPollTimeout(t *testing.T) {
	// Job never leaves processing.
	client := &fakeClient{jobs: []Job{
		{ID: "job-1", Status: StatusProcessing},
	}}

	start := time.Now()
	_, err := Poll(context.Background(), client, "job-1", PollConfig{
		Interval: time.Millisecond,
		Timeout:  20 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.HasCode(err, errors.ErrCodeTimeout) {
		t.Errorf("expected TIMEOUT, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("poll ran far past its bound: %v", elapsed)
	}
}

func TestPollRespectsCallerContext(t *testing.T) {
	client := &fakeClient{jobs: []Job{
		{ID: "job-1", Status: StatusProcessing},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Poll(ctx, client, "job-1", PollConfig{Interval: time.Millisecond})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if errors.HasCode(err, errors.ErrCodeTimeout) {
		t.Error("caller cancellation must not be reported as a timeout")
	}
}

// blockingClient hangs in GetJob until the context expires, the way a
// real status check behaves when the bound lapses mid-request.
type blockingClient struct {
	fakeClient
}

func (b *blockingClient) GetJob(ctx context.Context, jobID string) (*Job, error) {
	<-ctx.Done()
	return nil, errors.ConnectionFailed("fake", ctx.Err())
}

func TestPollBoundExpiresMidRequest(t *testing.T) {
	_, err := Poll(context.Background(), &blockingClient{}, "job-1", PollConfig{
		Interval: time.Millisecond,
		Timeout:  20 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.HasCode(err, errors.ErrCodeTimeout) {
		t.Errorf("expected TIMEOUT when the bound lapses during a status check, got %v", err)
	}
}

func TestPollUnknownStatusKeepsWaiting(t *testing.T) {
	client := &fakeClient{jobs: []Job{
		{ID: "job-1", Status: Status("transcoding")},
		{ID: "job-1", Status: StatusCompleted, Text: "done"},
	}}

	job, err := Poll(context.Background(), client, "job-1", PollConfig{Interval: time.Millisecond})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if job.Text != "done" {
		t.Errorf("unexpected transcript %q", job.Text)
	}
}

func TestPollOnPollCallback(t *testing.T) {
	client := &fakeClient{jobs: []Job{
		{ID: "job-1", Status: StatusProcessing},
		{ID: "job-1", Status: StatusCompleted},
	}}

	var seen []Status
	_, err := Poll(context.Background(), client, "job-1", PollConfig{
		Interval: time.Millisecond,
		OnPoll:   func(job *Job) { seen = append(seen, job.Status) },
	})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if len(seen) != 2 || seen[0] != StatusProcessing || seen[1] != StatusCompleted {
		t.Errorf("unexpected poll observations: %v", seen)
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusQueued, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusError, true},
		{Status("transcoding"), false},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Terminal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeClient{})

	client, err := reg.Get("fake")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if client.Name() != "fake" {
		t.Errorf("unexpected client %q", client.Name())
	}

	if _, err := reg.Get("missing"); err == nil {
		t.Error("expected error for unknown backend")
	}
	if names := reg.Names(); len(names) != 1 {
		t.Errorf("expected 1 registered backend, got %v", names)
	}
}
