package domain

// ExtractionMethod identifies one of the extraction strategies supported by
// the external tool, or one of the in-process fallbacks.
type ExtractionMethod string

const (
	MethodAuto       ExtractionMethod = "auto"
	MethodPyMuPDF    ExtractionMethod = "pymupdf"
	MethodPDFPlumber ExtractionMethod = "pdfplumber"
	MethodPyPDF      ExtractionMethod = "pypdf"
	MethodOCR        ExtractionMethod = "ocr"
	MethodNative     ExtractionMethod = "native"
	MethodHeuristic  ExtractionMethod = "heuristic"
)

// ValidExternalMethod reports whether m names a method the external
// extraction tool understands.
func ValidExternalMethod(m ExtractionMethod) bool {
	switch m {
	case MethodAuto, MethodPyMuPDF, MethodPDFPlumber, MethodPyPDF, MethodOCR:
		return true
	}
	return false
}

// ExtractionRequest carries one uploaded document through the extraction
// cascade. The document bytes are owned by this request and must not be
// retained by any backend after Extract returns.
type ExtractionRequest struct {
	Document        []byte
	Filename        string
	MediaType       string
	Method          ExtractionMethod
	UseExternalTool bool
}

// ExtractionMetadata describes how a result was produced.
type ExtractionMetadata struct {
	Method         string `json:"method"`
	CharacterCount int    `json:"total_characters"`
	PageCount      int    `json:"page_count,omitempty"`
	PagesWithText  int    `json:"pages_with_text,omitempty"`
	TablesFound    int    `json:"tables_found,omitempty"`
}

// ExtractionResult is the outcome of one backend attempt. Success is only
// set by the orchestrator once the text has passed the caller's quality
// gate; a backend returning text shorter than the gate is not a success.
type ExtractionResult struct {
	Text     string             `json:"text"`
	Metadata ExtractionMetadata `json:"metadata"`
	Success  bool               `json:"success"`
}
