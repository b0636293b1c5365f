// Package gemini implements the generation interfaces against Google's
// Gemini API. It is optional infrastructure: when no API key is configured
// the application runs without it and security reviews are stored without a
// generated risk summary.
package gemini
