package agent

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher maps agent types to their concrete agents. The registry is
// built once at construction and read-only afterwards, so concurrent
// Execute calls share it freely.
type Dispatcher struct {
	registry map[Type]Agent
	log      *zap.Logger

	// Advisory observability only: racy reads are fine, never use this for
	// mutual exclusion.
	mu        sync.Mutex
	inFlight  int
	currentOp string
}

func NewDispatcher(log *zap.Logger, agents ...Agent) *Dispatcher {
	registry := make(map[Type]Agent, len(agents))
	for _, a := range agents {
		registry[a.Type()] = a
	}
	return &Dispatcher{
		registry: registry,
		log:      log,
	}
}

// CurrentOperation reports whether any agent call is in flight and the label
// of the most recently started one.
func (d *Dispatcher) CurrentOperation() (bool, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight > 0, d.currentOp
}

func (d *Dispatcher) begin(t Type) {
	d.mu.Lock()
	d.inFlight++
	d.currentOp = operationLabel(t)
	d.mu.Unlock()
}

func (d *Dispatcher) end() {
	d.mu.Lock()
	d.inFlight--
	if d.inFlight == 0 {
		d.currentOp = ""
	}
	d.mu.Unlock()
}

func operationLabel(t Type) string {
	switch t {
	case TypeAuthentication:
		return "assessing sign-in risk"
	case TypeVerification:
		return "verifying identity"
	case TypeCommunication:
		return "moderating content"
	case TypeGuardian:
		return "processing guardian workflow"
	case TypeSecurity:
		return "monitoring security"
	case TypePersonality:
		return "analyzing compatibility"
	default:
		return string(t)
	}
}

// dispatch runs the untyped half of Execute: registry lookup, observability
// bookkeeping, error normalization.
func (d *Dispatcher) dispatch(ctx context.Context, t Type, input any) (any, error) {
	a, ok := d.registry[t]
	if !ok {
		return nil, NewError(KindAgentNotFound, fmt.Sprintf("no agent registered for type %q", t))
	}

	d.begin(t)
	defer d.end()

	out, err := a.Process(ctx, input)
	if err != nil {
		ae := AsError(err)
		d.log.Warn("agent call failed",
			zap.String("agent", string(t)),
			zap.String("kind", string(ae.Kind)),
			zap.String("detail", ae.Detail),
		)
		return nil, ae
	}
	return out, nil
}

// Execute routes input to the agent registered for t and down-casts the
// output to O, failing with invalid_response on a type mismatch. Multiple
// Execute calls may be outstanding concurrently.
func Execute[I any, O any](ctx context.Context, d *Dispatcher, t Type, input I) (O, error) {
	var zero O
	out, err := d.dispatch(ctx, t, input)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(O)
	if !ok {
		return zero, NewError(KindInvalidResponse, fmt.Sprintf("%s agent returned %T, expected %T", t, out, zero))
	}
	return typed, nil
}

// Submit runs Execute on its own goroutine and reports completion through a
// Result envelope, so callers are never blocked for an oracle round-trip.
func Submit[I any, O any](ctx context.Context, d *Dispatcher, t Type, input I) <-chan Result[O] {
	ch := make(chan Result[O], 1)
	go func() {
		out, err := Execute[I, O](ctx, d, t, input)
		if err != nil {
			ch <- Fail[O](err)
			return
		}
		ch <- Ok(out)
	}()
	return ch
}

// Typed convenience wrappers for the common calls.

func (d *Dispatcher) AnalyzePersonality(ctx context.Context, req PersonalityAnalysisRequest) (*PersonalityProfile, error) {
	return Execute[PersonalityAnalysisRequest, *PersonalityProfile](ctx, d, TypePersonality, req)
}

func (d *Dispatcher) AssessCompatibility(ctx context.Context, req CompatibilityRequest) (*CompatibilityAssessment, error) {
	return Execute[CompatibilityRequest, *CompatibilityAssessment](ctx, d, TypePersonality, req)
}

func (d *Dispatcher) ModerateContent(ctx context.Context, req ModerationRequest) (*ModerationResult, error) {
	return Execute[ModerationRequest, *ModerationResult](ctx, d, TypeCommunication, req)
}

func (d *Dispatcher) VerifyIdentity(ctx context.Context, req IdentityVerificationRequest) (*VerificationAssessment, error) {
	return Execute[IdentityVerificationRequest, *VerificationAssessment](ctx, d, TypeVerification, req)
}

func (d *Dispatcher) AssessLoginRisk(ctx context.Context, req LoginRiskRequest) (*LoginRiskAssessment, error) {
	return Execute[LoginRiskRequest, *LoginRiskAssessment](ctx, d, TypeAuthentication, req)
}
