package compatibility

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/zawajapp/zawaj-backend/internal/agent"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/repository"
	"go.uber.org/zap"
)

// Overall score weighting. The weights are fixed and never re-derived per
// call. The weighted blend is scaled down by up to riskPenalty when the risk
// index is at its worst.
const (
	weightPersonality = 0.25
	weightValues      = 0.20
	weightLifestyle   = 0.15
	weightReligious   = 0.15
	weightFamily      = 0.10
	weightGoals       = 0.10
	weightGrowthFit   = 0.05
	riskPenalty       = 0.3
)

type CompatibilityUseCase struct {
	dispatcher  *agent.Dispatcher
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	log         *zap.Logger
}

func NewCompatibilityUseCase(
	dispatcher *agent.Dispatcher,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	log *zap.Logger,
) *CompatibilityUseCase {
	return &CompatibilityUseCase{
		dispatcher:  dispatcher,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Assess computes the compatibility score for a pair of users. Scoring is
// all-or-nothing: any dispatcher failure surfaces verbatim and no partial
// score is ever returned.
func (uc *CompatibilityUseCase) Assess(ctx context.Context, userAID, userBID string) (*domain.CompatibilityScore, error) {
	attrsA, err := uc.loadAttributes(ctx, userAID)
	if err != nil {
		return nil, err
	}
	attrsB, err := uc.loadAttributes(ctx, userBID)
	if err != nil {
		return nil, err
	}

	// Dispatch asynchronously; the result envelope reports completion of the
	// oracle round-trip.
	result := <-agent.Submit[agent.CompatibilityRequest, *agent.CompatibilityAssessment](
		ctx, uc.dispatcher, agent.TypePersonality, agent.CompatibilityRequest{
			UserA: attrsA,
			UserB: attrsB,
		})
	assessment, err := result.Unwrap()
	if err != nil {
		return nil, err
	}

	score, err := BuildScore(assessment)
	if err != nil {
		return nil, err
	}

	uc.log.Info("compatibility assessed",
		zap.String("user_a", userAID),
		zap.String("user_b", userBID),
		zap.Float64("overall", score.Overall),
	)
	return score, nil
}

func (uc *CompatibilityUseCase) loadAttributes(ctx context.Context, userID string) (agent.ProfileAttributes, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return agent.ProfileAttributes{}, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return agent.ProfileAttributes{}, err
	}

	attrs := agent.ProfileAttributes{
		UserID: user.ID,
		Age:    user.Age(),
		Gender: string(user.Gender),
	}
	if profile == nil {
		return attrs, nil
	}

	if profile.Bio != nil {
		attrs.Bio = *profile.Bio
	}
	if profile.Education != nil {
		attrs.Education = string(*profile.Education)
	}
	if profile.Occupation != nil {
		attrs.Occupation = *profile.Occupation
	}
	if profile.City != nil {
		attrs.City = *profile.City
	}
	if profile.MaritalStatus != nil {
		attrs.MaritalStatus = string(*profile.MaritalStatus)
	}
	if profile.ReligiousPractice != nil {
		attrs.ReligiousPractice = string(*profile.ReligiousPractice)
	}
	attrs.Lifestyle = profile.Lifestyle
	attrs.Interests = profile.Interests
	return attrs, nil
}

// BuildScore maps a raw oracle assessment into the nine-dimension score.
// Insight categories and importance levels outside their closed sets make the
// whole assessment invalid. A partially valid score is never returned.
func BuildScore(a *agent.CompatibilityAssessment) (*domain.CompatibilityScore, error) {
	insights := make([]domain.CompatibilityInsight, 0, len(a.Insights))
	for _, in := range a.Insights {
		category, ok := insightCategory(in.Category)
		if !ok {
			return nil, agent.NewError(agent.KindInvalidResponse,
				fmt.Sprintf("unknown insight category %q", in.Category))
		}
		importance, ok := insightImportance(in.Importance)
		if !ok {
			return nil, agent.NewError(agent.KindInvalidResponse,
				fmt.Sprintf("unknown insight importance %q", in.Importance))
		}
		insights = append(insights, domain.CompatibilityInsight{
			Category:    category,
			Score:       domain.ClampScore(in.Score),
			Description: in.Description,
			Importance:  importance,
		})
	}

	// Importance first, score as tie-breaker.
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Importance.Rank() != insights[j].Importance.Rank() {
			return insights[i].Importance.Rank() > insights[j].Importance.Rank()
		}
		return insights[i].Score > insights[j].Score
	})

	score := &domain.CompatibilityScore{
		Personality:     domain.ClampScore(a.PersonalityScore),
		Values:          domain.ClampScore(a.ValuesScore),
		Lifestyle:       domain.ClampScore(a.LifestyleScore),
		Religious:       domain.ClampScore(a.ReligiousScore),
		Family:          domain.ClampScore(a.FamilyScore),
		Goals:           domain.ClampScore(a.GoalsScore),
		RiskIndex:       domain.ClampScore(a.RiskIndex),
		GrowthFit:       domain.ClampScore(a.GrowthFit),
		Insights:        insights,
		Recommendations: a.Recommendations,
	}

	blend := weightPersonality*score.Personality +
		weightValues*score.Values +
		weightLifestyle*score.Lifestyle +
		weightReligious*score.Religious +
		weightFamily*score.Family +
		weightGoals*score.Goals +
		weightGrowthFit*score.GrowthFit
	score.Overall = domain.ClampScore(blend * (1 - riskPenalty*score.RiskIndex/100))

	return score, nil
}

func insightCategory(s string) (domain.InsightCategory, bool) {
	switch c := domain.InsightCategory(s); c {
	case domain.InsightPersonality, domain.InsightValues, domain.InsightCommunication,
		domain.InsightConflictResolution, domain.InsightFamilyGoals,
		domain.InsightLifestyle, domain.InsightReligious, domain.InsightFinancial:
		return c, true
	default:
		return "", false
	}
}

func insightImportance(s string) (domain.InsightImportance, bool) {
	switch i := domain.InsightImportance(s); i {
	case domain.ImportanceCritical, domain.ImportanceImportant,
		domain.ImportanceModerate, domain.ImportanceLow:
		return i, true
	default:
		return "", false
	}
}
