// Package agent routes typed requests to capability-specific handlers and
// normalizes their results and errors into a closed taxonomy.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Type enumerates the capability agent variants.
type Type string

const (
	TypeAuthentication Type = "authentication"
	TypeVerification   Type = "verification"
	TypeCommunication  Type = "communication"
	TypeGuardian       Type = "guardian"
	TypeSecurity       Type = "security"
	TypePersonality    Type = "personality"
)

// Agent is one unit of polymorphic behavior: given a typed input, produce a
// typed output or fail with a taxonomy error. The accepted input shapes are
// determined by a type check inside Process; an unrecognized shape fails with
// invalid_response. Agents are stateless between invocations.
type Agent interface {
	Type() Type
	Process(ctx context.Context, input any) (any, error)
}

// Completer is the external text-completion oracle. Implementations must map
// transport failures to network_error and auth failures to
// authentication_error before returning.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// decodeJSON strips markdown code fences the oracle tends to wrap its output
// in, then decodes strict JSON into T. Any decode failure is an
// invalid_response: a partially parsed value never escapes.
func decodeJSON[T any](raw string) (T, error) {
	var out T
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&out); err != nil {
		return out, WrapError(KindInvalidResponse, fmt.Sprintf("malformed oracle output: %v", err), err)
	}
	return out, nil
}

// invalidInput is the shared failure for an input shape an agent does not
// recognize.
func invalidInput(t Type, input any) error {
	return NewError(KindInvalidResponse, fmt.Sprintf("%s agent: unsupported input type %T", t, input))
}
