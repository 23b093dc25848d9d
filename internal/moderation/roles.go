package moderation

import (
	"fmt"
	"sort"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
)

// Role is a staff role. Anything that does not parse as one of the
// constants below (plain members, anonymous callers) has rank zero.
type Role string

const (
	RoleModerator      Role = "moderator"
	RoleContentManager Role = "content_manager"
	RoleAdmin          Role = "admin"
	RoleSuperAdmin     Role = "super_admin"
)

var roleRank = map[Role]int{
	RoleModerator:      1,
	RoleContentManager: 2,
	RoleAdmin:          3,
	RoleSuperAdmin:     4,
}

func (r Role) Rank() int { return roleRank[r] }

func (r Role) IsStaff() bool { return r.Rank() > 0 }

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsStaff()
}

// Gate decides whether a role may invoke an action kind.
type Gate interface {
	CanPerform(role Role, kind models.ActionKind) bool
}

// Policy is the table-driven Gate: each action kind has a minimum role.
// A Policy is read-only once built and safe for concurrent use.
type Policy struct {
	minimum map[models.ActionKind]Role
}

// DefaultPolicy lets every staff role from moderator up invoke every action kind.
func DefaultPolicy() *Policy {
	p := &Policy{minimum: make(map[models.ActionKind]Role, len(actions))}
	for kind := range actions {
		p.minimum[kind] = RoleModerator
	}
	return p
}

var defaultPolicy = DefaultPolicy()

// CanPerform checks role against the default policy.
func CanPerform(role Role, kind models.ActionKind) bool {
	return defaultPolicy.CanPerform(role, kind)
}

func (p *Policy) CanPerform(role Role, kind models.ActionKind) bool {
	min, ok := p.minimum[kind]
	if !ok {
		return false
	}
	return role.IsStaff() && role.Rank() >= min.Rank()
}

// MinimumRole returns the lowest role allowed to invoke kind.
func (p *Policy) MinimumRole(kind models.ActionKind) (Role, bool) {
	r, ok := p.minimum[kind]
	return r, ok
}

// WithMinimum returns a copy of p where kind requires at least role.
// The minimum can never drop below moderator.
func (p *Policy) WithMinimum(kind models.ActionKind, role Role) (*Policy, error) {
	if _, ok := actions[kind]; !ok {
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
	if !role.IsStaff() {
		return nil, fmt.Errorf("action %q: %q is not a staff role", kind, role)
	}
	next := &Policy{minimum: make(map[models.ActionKind]Role, len(p.minimum))}
	for k, v := range p.minimum {
		next.minimum[k] = v
	}
	next.minimum[kind] = role
	return next, nil
}

// Kinds lists every action kind the dispatcher knows, sorted.
func Kinds() []models.ActionKind {
	kinds := make([]models.ActionKind, 0, len(actions))
	for k := range actions {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
