// Package transcription defines the provider interface and common types
// for asynchronous speech-to-text backends.
//
// Backends accept an audio upload, start a transcription job, and expose
// job status for polling. Poll drives a job to a terminal status with a
// bounded wait.
//
// # Backends
//
//   - transcription/assemblyai: AssemblyAI speech-to-text
//
// # Usage
//
//	uploadURL, err := client.Upload(ctx, audio)
//	jobID, err := client.Submit(ctx, uploadURL, transcription.SubmitOptions{SpeakerLabels: true})
//	job, err := transcription.Poll(ctx, client, jobID, transcription.PollConfig{Timeout: 10 * time.Minute})
package transcription
