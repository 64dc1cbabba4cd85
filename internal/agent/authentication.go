package agent

import (
	"context"
	"fmt"
	"strings"
)

// LoginRiskRequest describes a sign-in attempt for risk assessment.
type LoginRiskRequest struct {
	UserID         string `json:"user_id"`
	DeviceInfo     string `json:"device_info"`
	IPAddress      string `json:"ip_address"`
	KnownDevice    bool   `json:"known_device"`
	FailedAttempts int    `json:"failed_attempts"`
}

// LoginRiskAssessment is the structured verdict on a sign-in attempt.
type LoginRiskAssessment struct {
	RiskScore  float64  `json:"risk_score"`
	Suspicious bool     `json:"suspicious"`
	Reasons    []string `json:"reasons"`
}

// AuthenticationAgent assesses sign-in risk through the oracle.
type AuthenticationAgent struct {
	oracle Completer
}

func NewAuthenticationAgent(oracle Completer) *AuthenticationAgent {
	return &AuthenticationAgent{oracle: oracle}
}

func (a *AuthenticationAgent) Type() Type {
	return TypeAuthentication
}

func (a *AuthenticationAgent) Process(ctx context.Context, input any) (any, error) {
	var req LoginRiskRequest
	switch v := input.(type) {
	case LoginRiskRequest:
		req = v
	case *LoginRiskRequest:
		req = *v
	default:
		return nil, invalidInput(TypeAuthentication, input)
	}

	known := "no"
	if req.KnownDevice {
		known = "yes"
	}
	prompt := fmt.Sprintf(`Assess the risk of a sign-in attempt to a matchmaking app.

- device: %s
- ip address: %s
- known device: %s
- recent failed attempts: %d

Respond with ONLY a JSON object, no prose:
{"risk_score": 0-100, "suspicious": true/false, "reasons": ["..."]}`,
		strings.TrimSpace(req.DeviceInfo), req.IPAddress, known, req.FailedAttempts)

	raw, err := a.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, AsError(err)
	}

	assessment, err := decodeJSON[LoginRiskAssessment](raw)
	if err != nil {
		return nil, err
	}
	assessment.RiskScore = clamp100(assessment.RiskScore)
	return &assessment, nil
}
