package dataforseo

// Request models
type OrganicTask struct {
	Keyword      string `json:"keyword"`
	LocationName string `json:"location_name"`
	LanguageName string `json:"language_name"`
	Depth        int    `json:"depth"`
}

// Response models. Only the envelope status is read here; the result items
// are decoded by the ranking parser.
type envelopeStatus struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Status codes in the 20000 range mean the call succeeded
const (
	statusOKMin = 20000
	statusOKMax = 20099
)
