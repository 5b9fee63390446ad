package domain

// VoiceOptions are the synthesis knobs accepted by the API. Rate, pitch and
// volume are passed through for clients that render controls but are not
// applied by the current backends.
type VoiceOptions struct {
	Voice  string `json:"voice"`
	Rate   string `json:"rate,omitempty"`
	Pitch  string `json:"pitch,omitempty"`
	Volume string `json:"volume,omitempty"`
}

// SynthesisRequest carries cleaned script text to one synthesis backend.
// OutputPath is owned by the caller; the backend writes the finished
// artifact there and nowhere else.
type SynthesisRequest struct {
	Text       string
	Profile    VoiceProfile
	OutputPath string
}

// SynthesisResult is the outcome of a synthesis call. Exactly one of
// AudioPath or AudioData is set: a persisted file reference in the normal
// case, inline bytes when even the artifact directory was unwritable.
type SynthesisResult struct {
	ArtifactID string
	AudioPath  string
	AudioData  []byte
	Duration   string
	Voice      string
	Warning    string
	IsFallback bool
}
