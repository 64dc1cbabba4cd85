package agent

import (
	"context"
	"fmt"
)

// ModerationRequest asks whether a piece of user content is acceptable.
type ModerationRequest struct {
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}

// ModerationResult is the structured moderation verdict.
type ModerationResult struct {
	Allowed    bool     `json:"allowed"`
	Severity   float64  `json:"severity"`
	Categories []string `json:"categories"`
	Reason     string   `json:"reason"`
}

// CommunicationAgent moderates user-authored content through the oracle.
type CommunicationAgent struct {
	oracle Completer
}

func NewCommunicationAgent(oracle Completer) *CommunicationAgent {
	return &CommunicationAgent{oracle: oracle}
}

func (a *CommunicationAgent) Type() Type {
	return TypeCommunication
}

func (a *CommunicationAgent) Process(ctx context.Context, input any) (any, error) {
	var req ModerationRequest
	switch v := input.(type) {
	case ModerationRequest:
		req = v
	case *ModerationRequest:
		req = *v
	default:
		return nil, invalidInput(TypeCommunication, input)
	}

	prompt := fmt.Sprintf(`Moderate a message sent in a family-oriented matchmaking app.
Flag harassment, sexual content, scams, contact-information sharing before a match, and disrespectful speech.

Message:
%q

Respond with ONLY a JSON object, no prose:
{"allowed": true/false, "severity": 0-100, "categories": ["..."], "reason": "..."}`,
		req.Content)

	raw, err := a.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, AsError(err)
	}

	result, err := decodeJSON[ModerationResult](raw)
	if err != nil {
		return nil, err
	}
	result.Severity = clamp100(result.Severity)
	return &result, nil
}
