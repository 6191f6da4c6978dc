// Package summary defines the provider interface and result types for
// generative meeting summarization.
//
// Backends accept transcript text and return a structured summary with
// bullet points and action items. Provider output is expected, but not
// guaranteed, to be valid JSON; parse failures surface as a distinct
// MALFORMED_SUMMARY error so callers can tell "provider down" from
// "provider responded oddly".
//
// # Backends
//
//   - summary/gemini: Google Gemini generateContent
package summary
