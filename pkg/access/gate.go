// Package access gates controller actions behind configured permission keys.
// The gate owns no policy itself: an absent key allows the action
// unconditionally, a configured key delegates the decision to an external
// Authorizer collaborator.
package access

import (
	"fmt"

	"github.com/goliatone/go-formctrl/pkg/config"
)

// Action keys the gate understands. Host controllers may configure any
// subset under the "permissions" configuration map.
const (
	ActionCreate  = "modelCreate"
	ActionUpdate  = "modelUpdate"
	ActionDelete  = "modelDelete"
	ActionPreview = "modelPreview"
)

// Authorizer answers whether the current principal holds a permission key.
// The decision backend (users, roles, policies) is outside this module.
type Authorizer interface {
	Allows(permission string) bool
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(permission string) bool

// Allows implements Authorizer.
func (f AuthorizerFunc) Allows(permission string) bool {
	if f == nil {
		return false
	}
	return f(permission)
}

// DeniedError reports a rejected action. It carries the action and the
// permission key that failed so callers can render a forbidden response.
type DeniedError struct {
	Action     string
	Permission string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("access: action %q denied by permission %q", e.Action, e.Permission)
}

// Gate checks configured permissions for controller actions.
type Gate struct {
	cfg        *config.Config
	authorizer Authorizer
}

// NewGate constructs a Gate. A nil authorizer denies every configured
// permission; actions without a configured key remain allowed.
func NewGate(cfg *config.Config, authorizer Authorizer) *Gate {
	return &Gate{cfg: cfg, authorizer: authorizer}
}

// Allow returns nil when the action may proceed and a *DeniedError when the
// configured permission resolves false. It must run before any record lookup
// or mutation so denial leaves no side effects.
func (g *Gate) Allow(action string) error {
	if g == nil || g.cfg == nil {
		return nil
	}
	permission, configured := g.cfg.Permission(action)
	if !configured {
		return nil
	}
	if g.authorizer != nil && g.authorizer.Allows(permission) {
		return nil
	}
	return &DeniedError{Action: action, Permission: permission}
}
