package model

// TranscriptionResult is the output of one pass through the transcription
// pipeline. It is built once per request and not modified afterwards.
type TranscriptionResult struct {
	Language string `json:"language"`
	Original string `json:"original"`
	English  string `json:"english"`
}

// ExtractionFailure replaces the extraction service's payload when the
// service could not be reached.
type ExtractionFailure struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Response is the body returned by POST /transcribe.
type Response struct {
	Transcript TranscriptionResult `json:"transcript"`
	Extracted  any                 `json:"extracted"`
}
