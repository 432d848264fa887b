package kernel

import (
	"errors"
	"fmt"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

// Role is the part an actor plays towards work orders.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// ErrActorIsNotConstructed is returned by Validate on a zero Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// ParseRole accepts "admin" or "worker".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleWorker:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not admin or worker", s))
	}
}

// Actor is the caller of a command as resolved by the identity layer. The core
// trusts it and never reads identity from anywhere else.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor builds the caller of a command from an authenticated identity.
// Both a valid id and a known role are required.
//
// Example:
//
//	admin, err := NewActor(userID, RoleAdmin)
//	if err != nil {
//	    // the token carried an unknown role
//	}
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether a was built by NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID identifies the caller. For workers it is also the worker ID.
func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the caller may issue and settle orders.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

func (a Actor) IsWorker() bool {
	return a.role == RoleWorker
}

// Is reports whether the actor is the holder of id.
func (a Actor) Is(id UUID) bool {
	return a.id.IsEqual(id)
}

// String renders the actor as "role:id" for logs.
func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}
