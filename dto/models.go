package dto

// Text sources reported in DASExtractResponse.Source
const (
	SourcePDFText = "pdf_text"
	SourceOCR     = "ocr"
	SourceText    = "text"
)

type DocumentQuality struct {
	OcrConfidence float64  `json:"ocr_confidence"`
	PageCount     int      `json:"page_count"`
	FinalScore    float64  `json:"final_score"`
	Issues        []string `json:"issues"`
}
