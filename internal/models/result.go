package models

// ExtractionResult is the response payload for one extraction request.
// On failure only Success and Error are populated, so Summary and
// Transactions must be omitted from the JSON entirely.
type ExtractionResult struct {
	Success      bool              `json:"success"`
	Bank         string            `json:"bank,omitempty"`
	Filename     string            `json:"filename,omitempty"`
	Summary      *StatementSummary `json:"summary,omitempty"`
	Transactions []Transaction     `json:"transactions,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// NewFailureResult builds the uniform failure payload.
func NewFailureResult(msg string) *ExtractionResult {
	return &ExtractionResult{
		Success: false,
		Error:   msg,
	}
}
