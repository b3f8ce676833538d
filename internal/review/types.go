package review

// RiskLevel classifies a file or an individual issue.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// ParseRiskLevel maps a model-provided string to a RiskLevel. Anything
// unrecognized, including the empty string, becomes low.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskHigh, RiskMedium, RiskLow:
		return RiskLevel(s)
	default:
		return RiskLow
	}
}

// Rank orders risk levels for comparison, higher is riskier.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// Conclusion is the overall verdict for a change set.
type Conclusion string

const (
	CanSubmit   Conclusion = "can_submit"
	NeedsReview Conclusion = "needs_review"
)

// FileIssue is a single finding inside one file.
type FileIssue struct {
	FilePath    string    `json:"file_path"`
	LineNumber  int       `json:"line_number,omitempty"`
	Risk        RiskLevel `json:"risk_level"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion,omitempty"`
}

// FileReview is the per-file assessment.
type FileReview struct {
	FilePath string      `json:"file_path"`
	Risk     RiskLevel   `json:"risk_level"`
	Changes  string      `json:"changes"`
	Issues   []FileIssue `json:"issues"`
}

// CacheInfo records whether the run used a cached project context.
type CacheInfo struct {
	UsedCache      bool   `json:"used_cache"`
	CacheTimestamp string `json:"cache_timestamp,omitempty"`
	CacheVersion   string `json:"cache_version,omitempty"`
}

// Result is the complete outcome of a review run.
type Result struct {
	Conclusion    Conclusion   `json:"conclusion"`
	Confidence    float64      `json:"confidence"`
	FilesReviewed []FileReview `json:"files_reviewed"`
	Summary       string       `json:"summary"`
	Cache         *CacheInfo   `json:"cache,omitempty"`
}
