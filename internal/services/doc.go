// Package services wraps the generative-AI service behind the [Assistant] interface.
//
// # Gemini Client
//
// [GeminiClient] talks to the generateContent REST endpoint with resty. Requests are paced by a
// token-bucket limiter and authenticated either with an API key header or a bearer token taken
// from an [oauth2.TokenSource]. Structured operations (quiz, chapter text) send a JSON response
// schema; speech requests ask for an AUDIO modality and return raw PCM.
//
// # Fail-soft Wrapper
//
// [SoftAssistant] gives every operation the degraded behaviour views rely on:
//   - chat, explanation, meditation and captions fall back to fixed sentences
//   - chapter text degrades to an empty verse list when the reply is not valid JSON
//   - quiz and narration failures are returned so callers can reset to idle
//
// Failures are logged at warn level and never panic.
//
// # Error Handling
//
//   - [shared.ErrMissingCredentials] : no API key or access token configured
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrMalformedResponse] : reply could not be decoded into the expected shape
//   - [shared.ErrEmptyAudio] : speech reply without audio data
package services
