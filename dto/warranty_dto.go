package dto

// WarrantyAnalysis is the advisory view built on top of WarrantyDetails:
// expiry math, risk call, and human-readable findings.
type WarrantyAnalysis struct {
	Filename        string           `json:"filename,omitempty"`
	Warranty        *WarrantyDetails `json:"warranty"`
	KeyFindings     []string         `json:"key_findings"`
	Recommendations []string         `json:"recommendations"`
	RiskAssessment  string           `json:"risk_assessment"` // low, medium, high
	ExpiryWarning   string           `json:"expiry_warning,omitempty"`
	DaysUntilExpiry *int             `json:"days_until_expiry,omitempty"`
	Confidence      float64          `json:"confidence"`
}

// WarrantyBatchSummary aggregates a multi-file warranty analysis run.
type WarrantyBatchSummary struct {
	TotalFiles     int                `json:"total_files"`
	ProcessedFiles int                `json:"processed_files"`
	WarrantyDocs   int                `json:"warranty_docs"`
	FailedFiles    int                `json:"failed_files"`
	Results        []WarrantyAnalysis `json:"results"`
	ProcessingMS   int64              `json:"processing_ms"`
}
