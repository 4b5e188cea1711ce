package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor or SystemActor")

// Role is what an actor may do. Only admins may override a completed payout.
type Role int

const (
	RoleUnknown Role = iota
	RoleStaff
	RoleAdmin
	RoleSystem
)

func getRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown has no wire representation
	return map[Role]string{
		RoleStaff:  "staff",
		RoleAdmin:  "admin",
		RoleSystem: "system",
	}
}

func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for r, name := range getRoleStrings() {
		if name == needle {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Actor is whoever asked for a change: an operator, or the system itself for
// scheduled work. Actors are recorded on every history entry.
type Actor struct {
	id    string
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id string, role Role) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor")
	}
	if _, ok := getRoleStrings()[role]; !ok {
		return Actor{}, errs.NewValueIsInvalidError("role")
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor names an automated process, e.g. SystemActor("payout-retry")
// yields the actor "system:payout-retry".
func SystemActor(process string) Actor {
	return Actor{id: "system:" + process, role: RoleSystem, guard: guard.NewConstructorGuard()}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() string { return a.id }
func (a Actor) Role() Role { return a.role }

func (a Actor) CanOverridePayout() bool {
	return a.role == RoleAdmin
}
