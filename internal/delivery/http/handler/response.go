package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/agent"
	"github.com/zawajapp/zawaj-backend/internal/domain"
)

// Response is the uniform API envelope: either Data or Error is set, never
// both.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries the failure classification exposed to clients.
type ErrorBody struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, code int, data any) {
	c.JSON(code, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, code int, kind, message string) {
	c.JSON(code, Response{Success: false, Error: &ErrorBody{Kind: kind, Message: message}})
}

// respondFailure maps domain sentinels and the agent error taxonomy to HTTP
// status codes. This is the only place the mapping lives.
func respondFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrGuardianNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		respondError(c, http.StatusNotFound, "", err.Error())
		return
	case errors.Is(err, domain.ErrCannotSwipeSelf),
		errors.Is(err, domain.ErrInvalidSwipeAction):
		respondError(c, http.StatusBadRequest, "", err.Error())
		return
	case errors.Is(err, domain.ErrSwipeAlreadyExists),
		errors.Is(err, domain.ErrMatchTerminal):
		respondError(c, http.StatusConflict, "", err.Error())
		return
	case errors.Is(err, domain.ErrGuardianNotParty):
		respondError(c, http.StatusForbidden, "", err.Error())
		return
	}

	if kind, ok := agent.KindOf(err); ok {
		respondError(c, kindStatus(kind), string(kind), err.Error())
		return
	}

	respondError(c, http.StatusInternalServerError, "", "internal error")
}

func kindStatus(kind agent.ErrorKind) int {
	switch kind {
	case agent.KindRateLimitExceeded:
		return http.StatusTooManyRequests
	case agent.KindContentPolicyViolation, agent.KindInsufficientData:
		return http.StatusUnprocessableEntity
	case agent.KindNetworkError, agent.KindInvalidResponse, agent.KindAuthenticationError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		respondError(c, http.StatusUnauthorized, "", "unauthorized")
		return "", false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		respondError(c, http.StatusUnauthorized, "", "unauthorized")
		return "", false
	}
	return userID, true
}
