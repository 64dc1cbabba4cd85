package agent

import (
	"context"
	"fmt"
)

// IdentityVerificationRequest asks whether a profile looks authentic.
type IdentityVerificationRequest struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	Age          int    `json:"age"`
	Bio          string `json:"bio,omitempty"`
	PhotoCount   int    `json:"photo_count"`
	DocumentType string `json:"document_type,omitempty"`
}

// VerificationAssessment is the structured authenticity verdict.
type VerificationAssessment struct {
	Authentic  bool     `json:"authentic"`
	Confidence float64  `json:"confidence"`
	Flags      []string `json:"flags"`
}

// VerificationAgent assesses profile authenticity through the oracle.
type VerificationAgent struct {
	oracle Completer
}

func NewVerificationAgent(oracle Completer) *VerificationAgent {
	return &VerificationAgent{oracle: oracle}
}

func (a *VerificationAgent) Type() Type {
	return TypeVerification
}

func (a *VerificationAgent) Process(ctx context.Context, input any) (any, error) {
	var req IdentityVerificationRequest
	switch v := input.(type) {
	case IdentityVerificationRequest:
		req = v
	case *IdentityVerificationRequest:
		req = *v
	default:
		return nil, invalidInput(TypeVerification, input)
	}

	prompt := fmt.Sprintf(`Assess whether a matchmaking app profile looks authentic.

- name: %s
- age: %d
- bio: %s
- uploaded photos: %d
- identity document: %s

Respond with ONLY a JSON object, no prose:
{"authentic": true/false, "confidence": 0-100, "flags": ["..."]}`,
		req.FullName, req.Age, req.Bio, req.PhotoCount, req.DocumentType)

	raw, err := a.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, AsError(err)
	}

	assessment, err := decodeJSON[VerificationAssessment](raw)
	if err != nil {
		return nil, err
	}
	assessment.Confidence = clamp100(assessment.Confidence)
	return &assessment, nil
}
