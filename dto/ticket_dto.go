package dto

// DocumentQuality summarizes how trustworthy the OCR pass behind an
// extraction was. Callers use it to decide how much operator review a
// pre-filled form needs.
type DocumentQuality struct {
	ResolutionScore float64  `json:"resolution_score"`
	OcrConfidence   float64  `json:"ocr_confidence"`
	FinalScore      float64  `json:"final_score"`
	Issues          []string `json:"issues"`
}

// ExtractedPair is one entry of the ordered field list used to populate the
// operator form. Null fields are skipped; the record remains authoritative.
type ExtractedPair struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// TicketExtractResponse is the result of extracting one weighbridge ticket.
// Record always carries every known field name; a field the engine could not
// recover is null, never absent.
type TicketExtractResponse struct {
	Record      map[string]any  `json:"record"`
	Pairs       []ExtractedPair `json:"pairs"`
	Quality     DocumentQuality `json:"quality"`
	Source      string          `json:"source"`
	Notes       []string        `json:"notes,omitempty"`
	ProcessedAt string          `json:"processed_at"`
}
