package domain

type InsightCategory string

const (
	InsightPersonality        InsightCategory = "personality"
	InsightValues             InsightCategory = "values"
	InsightCommunication      InsightCategory = "communication"
	InsightConflictResolution InsightCategory = "conflict_resolution"
	InsightFamilyGoals        InsightCategory = "family_goals"
	InsightLifestyle          InsightCategory = "lifestyle"
	InsightReligious          InsightCategory = "religious"
	InsightFinancial          InsightCategory = "financial"
)

type InsightImportance string

const (
	ImportanceCritical  InsightImportance = "critical"
	ImportanceImportant InsightImportance = "important"
	ImportanceModerate  InsightImportance = "moderate"
	ImportanceLow       InsightImportance = "low"
)

// Rank orders importance levels, critical highest.
func (i InsightImportance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 3
	case ImportanceImportant:
		return 2
	case ImportanceModerate:
		return 1
	default:
		return 0
	}
}

type CompatibilityInsight struct {
	Category    InsightCategory   `json:"category"`
	Score       float64           `json:"score"`
	Description string            `json:"description"`
	Importance  InsightImportance `json:"importance"`
}

// CompatibilityScore is the nine-dimension result of a pair assessment.
// Every dimension lies in [0,100]; RiskIndex is inverted (lower is better).
// A score is immutable once produced. Re-assessment recomputes it rather
// than patching.
type CompatibilityScore struct {
	Overall         float64                `json:"overall"`
	Personality     float64                `json:"personality"`
	Values          float64                `json:"values"`
	Lifestyle       float64                `json:"lifestyle"`
	Religious       float64                `json:"religious"`
	Family          float64                `json:"family"`
	Goals           float64                `json:"goals"`
	RiskIndex       float64                `json:"risk_index"`
	GrowthFit       float64                `json:"growth_fit"`
	Insights        []CompatibilityInsight `json:"insights"`
	Recommendations []string               `json:"recommendations"`
}

// ClampScore forces a dimension value into the declared [0,100] range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
