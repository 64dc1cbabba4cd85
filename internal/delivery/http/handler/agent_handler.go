package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/agent"
)

type AgentHandler struct {
	dispatcher *agent.Dispatcher
}

func NewAgentHandler(dispatcher *agent.Dispatcher) *AgentHandler {
	return &AgentHandler{
		dispatcher: dispatcher,
	}
}

// StatusResponse is the dispatcher's advisory busy signal. It is a snapshot:
// nothing stops a new operation from starting right after it is read.
type StatusResponse struct {
	Busy             bool   `json:"busy"`
	CurrentOperation string `json:"current_operation,omitempty"`
}

// Status handles GET /agents/status
// @Summary Dispatcher status
// @Description Report whether an agent operation is currently in flight
// @Tags agents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /agents/status [get]
func (h *AgentHandler) Status(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	busy, op := h.dispatcher.CurrentOperation()
	respondOK(c, http.StatusOK, StatusResponse{Busy: busy, CurrentOperation: op})
}

// ModerateRequest submits a message for moderation.
type ModerateRequest struct {
	Content string `json:"content" binding:"required"`
}

// Moderate handles POST /agents/moderate
// @Summary Moderate content
// @Description Check a message against the platform content policy
// @Tags agents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ModerateRequest true "Content to check"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 502 {object} Response
// @Router /agents/moderate [post]
func (h *AgentHandler) Moderate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "", "invalid request body")
		return
	}

	result, err := h.dispatcher.ModerateContent(c.Request.Context(), agent.ModerationRequest{
		SenderID: userID,
		Content:  req.Content,
	})
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// VerifyRequest submits identity details for verification.
type VerifyRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Age          int    `json:"age" binding:"required,gte=18"`
	Bio          string `json:"bio"`
	PhotoCount   int    `json:"photo_count" binding:"gte=0"`
	DocumentType string `json:"document_type"`
}

// Verify handles POST /agents/verify
// @Summary Verify identity
// @Description Run the identity verification assessment for the current user
// @Tags agents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Documents"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 502 {object} Response
// @Router /agents/verify [post]
func (h *AgentHandler) Verify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "", "invalid request body")
		return
	}

	result, err := h.dispatcher.VerifyIdentity(c.Request.Context(), agent.IdentityVerificationRequest{
		UserID:       userID,
		FullName:     req.FullName,
		Age:          req.Age,
		Bio:          req.Bio,
		PhotoCount:   req.PhotoCount,
		DocumentType: req.DocumentType,
	})
	if err != nil {
		respondFailure(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}
