package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/usecase/compatibility"
)

type CompatibilityHandler struct {
	compatibilityUseCase *compatibility.CompatibilityUseCase
}

func NewCompatibilityHandler(compatibilityUseCase *compatibility.CompatibilityUseCase) *CompatibilityHandler {
	return &CompatibilityHandler{
		compatibilityUseCase: compatibilityUseCase,
	}
}

// AssessRequest asks for a compatibility assessment against another user.
type AssessRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

// Assess handles POST /compatibility/assess
// @Summary Assess compatibility
// @Description Compute the compatibility score between the current user and a target
// @Tags compatibility
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AssessRequest true "Target user"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Failure 502 {object} Response
// @Router /compatibility/assess [post]
func (h *CompatibilityHandler) Assess(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "", "invalid request body")
		return
	}
	if req.TargetUserID == userID {
		respondError(c, http.StatusBadRequest, "", "cannot assess compatibility with yourself")
		return
	}

	score, err := h.compatibilityUseCase.Assess(c.Request.Context(), userID, req.TargetUserID)
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, score)
}
