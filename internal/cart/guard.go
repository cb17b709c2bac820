package cart

import (
	"context"
	"fmt"
)

// Decision is the outcome of reconciling an incoming item's supplier against
// the cart's bound supplier.
type Decision int

const (
	Deny Decision = iota
	Allow
	AllowAfterReset
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case AllowAfterReset:
		return "allow_after_reset"
	default:
		return "deny"
	}
}

// Confirmer is the capability the UI layer supplies to answer a destructive
// cross-supplier prompt. No answer means decline.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// StaticConfirmer answers every prompt with a fixed decision, the shape a
// request-scoped "replace my cart" flag arrives in.
func StaticConfirmer(answer bool) Confirmer {
	return ConfirmerFunc(func(context.Context, string) bool { return answer })
}

// SupplierGuard enforces the single-supplier invariant.
type SupplierGuard struct{}

// Reconcile decides whether an item from the incoming supplier may enter the
// cart. An empty cart binds the incoming supplier; a matching supplier passes
// through; a genuine conflict is put to the confirmer, and declining (or a
// missing confirmer) leaves the cart untouched.
func (SupplierGuard) Reconcile(ctx context.Context, current *Supplier, incoming Supplier, confirm Confirmer) Decision {
	if current == nil {
		return Allow
	}
	if current.ID == incoming.ID {
		return Allow
	}
	if confirm == nil {
		return Deny
	}
	prompt := fmt.Sprintf("Replace the items from %s with items from %s?", current.Name, incoming.Name)
	if confirm.Confirm(ctx, prompt) {
		return AllowAfterReset
	}
	return Deny
}
