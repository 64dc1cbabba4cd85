package agent

import (
	"context"
	"fmt"
	"strings"
)

// ProfileAttributes carries the slice of a user relevant to reasoning tasks.
type ProfileAttributes struct {
	UserID            string   `json:"user_id"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	Bio               string   `json:"bio,omitempty"`
	Education         string   `json:"education,omitempty"`
	Occupation        string   `json:"occupation,omitempty"`
	City              string   `json:"city,omitempty"`
	MaritalStatus     string   `json:"marital_status,omitempty"`
	ReligiousPractice string   `json:"religious_practice,omitempty"`
	Lifestyle         []string `json:"lifestyle,omitempty"`
	Interests         []string `json:"interests,omitempty"`
}

// PersonalityAnalysisRequest asks for a trait analysis of a single user.
type PersonalityAnalysisRequest struct {
	Profile ProfileAttributes `json:"profile"`
}

// PersonalityProfile is the structured trait analysis of one user.
type PersonalityProfile struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
	Summary           string  `json:"summary"`
}

// CompatibilityRequest asks for a pair assessment.
type CompatibilityRequest struct {
	UserA ProfileAttributes `json:"user_a"`
	UserB ProfileAttributes `json:"user_b"`
}

// AssessmentInsight mirrors the insight tuple the oracle is instructed to
// emit; categories and importance levels are validated downstream.
type AssessmentInsight struct {
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
	Importance  string  `json:"importance"`
}

// CompatibilityAssessment is the structured pair assessment mapped from the
// oracle output. All sub-scores are on a 0-100 scale; RiskIndex is inverted
// (lower is better).
type CompatibilityAssessment struct {
	PersonalityScore float64             `json:"personality_score"`
	ValuesScore      float64             `json:"values_score"`
	LifestyleScore   float64             `json:"lifestyle_score"`
	ReligiousScore   float64             `json:"religious_score"`
	FamilyScore      float64             `json:"family_score"`
	GoalsScore       float64             `json:"goals_score"`
	RiskIndex        float64             `json:"risk_index"`
	GrowthFit        float64             `json:"growth_fit"`
	Insights         []AssessmentInsight `json:"insights"`
	Recommendations  []string            `json:"recommendations"`
}

// PersonalityAgent performs trait analysis and pair compatibility assessment
// through the text-completion oracle.
type PersonalityAgent struct {
	oracle Completer
}

func NewPersonalityAgent(oracle Completer) *PersonalityAgent {
	return &PersonalityAgent{oracle: oracle}
}

func (a *PersonalityAgent) Type() Type {
	return TypePersonality
}

func (a *PersonalityAgent) Process(ctx context.Context, input any) (any, error) {
	switch req := input.(type) {
	case PersonalityAnalysisRequest:
		return a.analyze(ctx, req)
	case *PersonalityAnalysisRequest:
		return a.analyze(ctx, *req)
	case CompatibilityRequest:
		return a.assess(ctx, req)
	case *CompatibilityRequest:
		return a.assess(ctx, *req)
	default:
		return nil, invalidInput(TypePersonality, input)
	}
}

func (a *PersonalityAgent) analyze(ctx context.Context, req PersonalityAnalysisRequest) (*PersonalityProfile, error) {
	prompt := fmt.Sprintf(`Analyze the personality of a matchmaking app user from their profile.

Profile:
%s

Respond with ONLY a JSON object, no prose:
{"openness": 0-100, "conscientiousness": 0-100, "extraversion": 0-100, "agreeableness": 0-100, "neuroticism": 0-100, "summary": "one short paragraph"}`,
		describeProfile(req.Profile))

	raw, err := a.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, AsError(err)
	}

	profile, err := decodeJSON[PersonalityProfile](raw)
	if err != nil {
		return nil, err
	}

	profile.Openness = clamp100(profile.Openness)
	profile.Conscientiousness = clamp100(profile.Conscientiousness)
	profile.Extraversion = clamp100(profile.Extraversion)
	profile.Agreeableness = clamp100(profile.Agreeableness)
	profile.Neuroticism = clamp100(profile.Neuroticism)
	return &profile, nil
}

func (a *PersonalityAgent) assess(ctx context.Context, req CompatibilityRequest) (*CompatibilityAssessment, error) {
	prompt := fmt.Sprintf(`Assess the marriage compatibility of two matchmaking app users.

User A:
%s

User B:
%s

Score each facet 0-100. risk_index is inverted: 0 means no red flags, 100 means severe red flags.
values_score must reflect alignment across family, career, religion, education, lifestyle, finances and personal growth.
Insight categories must be drawn from: personality, values, communication, conflict_resolution, family_goals, lifestyle, religious, financial.
Importance must be one of: critical, important, moderate, low.

Respond with ONLY a JSON object, no prose:
{"personality_score": 0, "values_score": 0, "lifestyle_score": 0, "religious_score": 0, "family_score": 0, "goals_score": 0, "risk_index": 0, "growth_fit": 0, "insights": [{"category": "", "score": 0, "description": "", "importance": ""}], "recommendations": [""]}`,
		describeProfile(req.UserA), describeProfile(req.UserB))

	raw, err := a.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, AsError(err)
	}

	assessment, err := decodeJSON[CompatibilityAssessment](raw)
	if err != nil {
		return nil, err
	}

	assessment.PersonalityScore = clamp100(assessment.PersonalityScore)
	assessment.ValuesScore = clamp100(assessment.ValuesScore)
	assessment.LifestyleScore = clamp100(assessment.LifestyleScore)
	assessment.ReligiousScore = clamp100(assessment.ReligiousScore)
	assessment.FamilyScore = clamp100(assessment.FamilyScore)
	assessment.GoalsScore = clamp100(assessment.GoalsScore)
	assessment.RiskIndex = clamp100(assessment.RiskIndex)
	assessment.GrowthFit = clamp100(assessment.GrowthFit)
	for i := range assessment.Insights {
		assessment.Insights[i].Score = clamp100(assessment.Insights[i].Score)
	}
	return &assessment, nil
}

func describeProfile(p ProfileAttributes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- age: %d\n- gender: %s\n", p.Age, p.Gender)
	if p.Bio != "" {
		fmt.Fprintf(&b, "- bio: %s\n", p.Bio)
	}
	if p.Education != "" {
		fmt.Fprintf(&b, "- education: %s\n", p.Education)
	}
	if p.Occupation != "" {
		fmt.Fprintf(&b, "- occupation: %s\n", p.Occupation)
	}
	if p.City != "" {
		fmt.Fprintf(&b, "- city: %s\n", p.City)
	}
	if p.MaritalStatus != "" {
		fmt.Fprintf(&b, "- marital status: %s\n", p.MaritalStatus)
	}
	if p.ReligiousPractice != "" {
		fmt.Fprintf(&b, "- religious practice: %s\n", p.ReligiousPractice)
	}
	if len(p.Lifestyle) > 0 {
		fmt.Fprintf(&b, "- lifestyle: %s\n", strings.Join(p.Lifestyle, ", "))
	}
	if len(p.Interests) > 0 {
		fmt.Fprintf(&b, "- interests: %s\n", strings.Join(p.Interests, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
