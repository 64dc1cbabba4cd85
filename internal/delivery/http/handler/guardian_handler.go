package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/domain"
	"github.com/zawajapp/zawaj-backend/internal/usecase/match"
)

type GuardianHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewGuardianHandler(matchUseCase *match.MatchUseCase) *GuardianHandler {
	return &GuardianHandler{
		matchUseCase: matchUseCase,
	}
}

// ApprovalRequest records a guardian decision on a match. A changed mind is a
// new request; earlier decisions stay on record.
type ApprovalRequest struct {
	GuardianID string  `json:"guardian_id" binding:"required"`
	MatchID    string  `json:"match_id" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=approved rejected needs_more_info"`
	Comment    *string `json:"comment"`
}

// RecordApproval handles POST /guardian/approvals
// @Summary Record guardian decision
// @Description Append a guardian decision to a match and re-evaluate its status
// @Tags guardian
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ApprovalRequest true "Guardian decision"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /guardian/approvals [post]
func (h *GuardianHandler) RecordApproval(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "", "invalid request body")
		return
	}

	m, err := h.matchUseCase.RecordApproval(
		c.Request.Context(),
		req.GuardianID,
		req.MatchID,
		domain.ApprovalStatus(req.Status),
		req.Comment,
	)
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}
