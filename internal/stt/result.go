package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript string  // The transcribed text, in the spoken language
	Language   string  // Language hint from the provider, may be empty
	Duration   float64 // Audio duration in seconds, may be 0 if not provided
	Provider   string  // The provider used (e.g., "groq")
}
