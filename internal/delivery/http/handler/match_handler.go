package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// SwipeRequest records the current user's action on a target.
type SwipeRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=pass like super_like"`
}

// SwipeResponse reports the outcome of a swipe. Match is nil for a pass and
// for a like that created no match.
type SwipeResponse struct {
	Matched bool          `json:"matched"`
	Match   *domain.Match `json:"match,omitempty"`
}

// CreateSwipe handles POST /swipe
// @Summary Swipe on a user
// @Description Record a pass, like or super-like on a target user
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SwipeRequest true "Swipe action"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /swipe [post]
func (h *MatchHandler) CreateSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "", "invalid request body")
		return
	}

	m, err := h.matchUseCase.Apply(c.Request.Context(), domain.SwipeAction(req.Action), userID, req.TargetUserID)
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, SwipeResponse{Matched: m != nil, Match: m})
}

// ListMatches handles GET /matches
// @Summary List my matches
// @Description List the current user's matches with approval history
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 500 {object} Response
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	matches, err := h.matchUseCase.ListMatches(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, matches)
}

// GetMatch handles GET /matches/:id
// @Summary Get a match
// @Description Get one of the current user's matches by id
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	m, err := h.matchUseCase.GetMatch(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}
