package api

import "github.com/hanifra/studycast/server/domain"

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExtractFailureResponse is returned when extraction exhausted every
// backend without meeting the quality gate.
type ExtractFailureResponse struct {
	Error    string          `json:"error"`
	Metadata FailureMetadata `json:"metadata"`
}

// FailureMetadata describes how close the cascade came to the gate.
type FailureMetadata struct {
	Threshold        int `json:"threshold"`
	LongestCandidate int `json:"longest_candidate"`
}

// SynthesizeRequest is the JSON body of the synthesis endpoint.
type SynthesizeRequest struct {
	Text    string              `json:"text"`
	Options domain.VoiceOptions `json:"options"`
}

// SynthesizeResponse is always returned with HTTP 200: synthesis failures
// are absorbed into the placeholder fallback and surface only as a warning.
type SynthesizeResponse struct {
	Success    bool   `json:"success"`
	AudioURL   string `json:"audioUrl"`
	Duration   string `json:"duration"`
	Voice      string `json:"voice"`
	Warning    string `json:"warning,omitempty"`
	IsFallback bool   `json:"isFallback,omitempty"`
}
