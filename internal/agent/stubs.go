package agent

import "context"

// GuardianAgent and SecurityAgent are intentional placeholders. Guardian
// workflows are driven by the match lifecycle and security monitoring has no
// reasoning task wired yet, so both always fail with insufficient_data. They
// stay registered so dispatch resolves their types instead of reporting
// agent_not_found.

type GuardianAgent struct{}

func NewGuardianAgent() *GuardianAgent {
	return &GuardianAgent{}
}

func (a *GuardianAgent) Type() Type {
	return TypeGuardian
}

func (a *GuardianAgent) Process(ctx context.Context, input any) (any, error) {
	return nil, NewError(KindInsufficientData, "guardian agent has no reasoning capability")
}

type SecurityAgent struct{}

func NewSecurityAgent() *SecurityAgent {
	return &SecurityAgent{}
}

func (a *SecurityAgent) Type() Type {
	return TypeSecurity
}

func (a *SecurityAgent) Process(ctx context.Context, input any) (any, error) {
	return nil, NewError(KindInsufficientData, "security agent has no reasoning capability")
}
