package model

type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "High"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelLow    RiskLevel = "Low"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLevelHigh, RiskLevelMedium, RiskLevelLow:
		return true
	}
	return false
}

// DiagnosisResult is the structured output of the AI symptom-analysis
// collaborator.
type DiagnosisResult struct {
	RiskLevel   RiskLevel `json:"riskLevel"`
	Analysis    string    `json:"analysis"`
	Suggestions []string  `json:"suggestions"`
}

type AnalyzeSymptomsRequest struct {
	Symptoms string `json:"symptoms" binding:"required,max=4000"`
	// Teeth optionally narrows the case to specific FDI codes.
	Teeth []string `json:"teeth" binding:"omitempty,dive,fdi"`
}
