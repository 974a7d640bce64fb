// Package confirm is the user-confirmation collaborator the submission
// pipeline suspends on before signing anything.
package confirm

import "context"

// Request is what gets presented to the user for sign-off: the kind of
// action, the serialized unsigned transaction, and optional message and
// warning lines.
type Request struct {
	Kind    string
	Payload []byte
	Message string
	Warning string
}

// Confirmer resolves a confirmation request to a boolean decision.
// Implementations block until the user (or policy) decides; ctx bounds
// the wait.
type Confirmer interface {
	Confirm(ctx context.Context, req Request) (bool, error)
}

// Func adapts a function to the Confirmer interface
type Func func(ctx context.Context, req Request) (bool, error)

// Confirm implements Confirmer
func (f Func) Confirm(ctx context.Context, req Request) (bool, error) {
	return f(ctx, req)
}

// Static is a policy confirmer that always answers the same way.
// Used for headless runs (CONFIRM_MODE=approve or deny).
type Static bool

// Confirm implements Confirmer
func (s Static) Confirm(ctx context.Context, req Request) (bool, error) {
	return bool(s), nil
}
