// Package httpclient provides the outbound HTTP client used to talk to the
// transcription and summary providers. It layers authentication, default
// headers, typed error classification, and bounded retry on top of
// net/http.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.APIKeyAuthHeader("my-key", "authorization"),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/transcript",
//	    Body:   payload,
//	})
package httpclient
