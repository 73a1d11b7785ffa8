package models

// ReportRequest is the body of POST /api/report
type ReportRequest struct {
	CompanyName string `json:"companyName" validate:"max=200"`
	Website     string `json:"website" validate:"omitempty,max=2048"`
}
