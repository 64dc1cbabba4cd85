package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// CandidateResponse is the feed view of a candidate.
type CandidateResponse struct {
	UserID  string              `json:"user_id"`
	Name    string              `json:"name"`
	Age     int                 `json:"age"`
	Profile *domain.UserProfile `json:"profile,omitempty"`
}

// GetCandidates handles GET /feed/candidates
// @Summary Get feed candidates
// @Description Get candidates matching the current user's preferences
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 500 {object} Response
// @Router /feed/candidates [get]
func (h *FeedHandler) GetCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	candidates, err := h.feedUseCase.ListCandidates(c.Request.Context(), userID)
	if err != nil {
		respondFailure(c, err)
		return
	}

	out := make([]CandidateResponse, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, CandidateResponse{
			UserID:  cand.User.ID,
			Name:    cand.User.FullName(),
			Age:     cand.User.Age(),
			Profile: cand.Profile,
		})
	}
	respondOK(c, http.StatusOK, out)
}

// GetPreferences handles GET /feed/preferences
// @Summary Get my preferences
// @Description Get the current user's candidate filter, creating defaults on first access
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 500 {object} Response
// @Router /feed/preferences [get]
func (h *FeedHandler) GetPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	prefs, err := h.feedUseCase.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, prefs)
}

// UpdatePreferencesRequest replaces the user's candidate filter wholesale.
type UpdatePreferencesRequest struct {
	MinAge             int                        `json:"min_age" binding:"required,gte=18"`
	MaxAge             int                        `json:"max_age" binding:"required,gte=18"`
	MaxDistanceKm      int                        `json:"max_distance_km" binding:"gte=0"`
	MaritalStatuses    []domain.MaritalStatus     `json:"marital_statuses"`
	ReligiousPractices []domain.ReligiousPractice `json:"religious_practices"`
	EducationLevels    []domain.EducationLevel    `json:"education_levels"`
	Locations          []string                   `json:"locations"`
	AcceptedLifestyles []string                   `json:"accepted_lifestyles"`
}

// UpdatePreferences handles PUT /feed/preferences
// @Summary Update my preferences
// @Description Replace the current user's candidate filter
// @Tags feed
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdatePreferencesRequest true "New preferences"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 500 {object} Response
// @Router /feed/preferences [put]
func (h *FeedHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "", "invalid request body")
		return
	}

	prefs, err := h.feedUseCase.SavePreferences(c.Request.Context(), &domain.UserPreferences{
		UserID:             userID,
		MinAge:             req.MinAge,
		MaxAge:             req.MaxAge,
		MaxDistanceKm:      req.MaxDistanceKm,
		MaritalStatuses:    req.MaritalStatuses,
		ReligiousPractices: req.ReligiousPractices,
		EducationLevels:    req.EducationLevels,
		Locations:          req.Locations,
		AcceptedLifestyles: req.AcceptedLifestyles,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "", err.Error())
		return
	}
	respondOK(c, http.StatusOK, prefs)
}
