package access

import (
	"sort"

	"tailorshop/internal/domain"
)

type Resource string

const (
	Users         Resource = "users"
	Customers     Resource = "customers"
	Measurements  Resource = "measurements"
	Profiles      Resource = "measurement_profiles"
	Templates     Resource = "measurement_templates"
	Rules         Resource = "validation_rules"
	Expiry        Resource = "expiry_rules"
	Feedback      Resource = "garment_feedback"
	Orders        Resource = "orders"
	Fittings      Resource = "fittings"
	Reminders     Resource = "reminders"
	Tasks         Resource = "tasks"
	Notifications Resource = "notifications"
	Permissions   Resource = "permissions"
	Reports       Resource = "reports"
	Backup        Resource = "backup"
	Audit         Resource = "audit_logs"

	AnyResource Resource = "*"
)

type Action string

const (
	Read    Action = "read"
	Create  Action = "create"
	Update  Action = "update"
	Delete  Action = "delete"
	Execute Action = "execute"

	AnyAction Action = "*"
)

type Effect int

const (
	Deny Effect = iota
	Allow
	// SelfOnly allows the action on rows the principal is assigned to.
	SelfOnly
)

func (e Effect) String() string {
	switch e {
	case Allow:
		return "allow"
	case SelfOnly:
		return "self_only"
	default:
		return "deny"
	}
}

func (e Effect) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

type Grant struct {
	Role     domain.UserRole `json:"role"`
	Resource Resource        `json:"resource"`
	Action   Action          `json:"action"`
	Effect   Effect          `json:"effect"`
}

type key struct {
	role     domain.UserRole
	resource Resource
	action   Action
}

// Policy is a (role, resource, action) -> effect table. Exact entries win over
// wildcard ones; anything not listed is denied.
type Policy struct {
	rules map[key]Effect
}

func NewPolicy(grants ...Grant) *Policy {
	p := &Policy{rules: make(map[key]Effect, len(grants))}
	for _, g := range grants {
		p.rules[key{g.Role, g.Resource, g.Action}] = g.Effect
	}
	return p
}

func (p *Policy) Evaluate(role domain.UserRole, res Resource, act Action) Effect {
	for _, k := range []key{
		{role, res, act},
		{role, res, AnyAction},
		{role, AnyResource, act},
		{role, AnyResource, AnyAction},
	} {
		if eff, ok := p.rules[k]; ok {
			return eff
		}
	}
	return Deny
}

var (
	allResources = []Resource{
		Users, Customers, Measurements, Profiles, Templates, Rules, Expiry, Feedback, Orders,
		Fittings, Reminders, Tasks, Notifications, Permissions, Reports, Backup, Audit,
	}
	allActions = []Action{Read, Create, Update, Delete, Execute}
)

// Effective expands the table for role into concrete non-deny grants.
func (p *Policy) Effective(role domain.UserRole) []Grant {
	var out []Grant
	for _, res := range allResources {
		for _, act := range allActions {
			if eff := p.Evaluate(role, res, act); eff != Deny {
				out = append(out, Grant{Role: role, Resource: res, Action: act, Effect: eff})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

func grants(role domain.UserRole, res Resource, eff Effect, acts ...Action) []Grant {
	out := make([]Grant, 0, len(acts))
	for _, a := range acts {
		out = append(out, Grant{Role: role, Resource: res, Action: a, Effect: eff})
	}
	return out
}

func DefaultPolicy() *Policy {
	var g []Grant
	add := func(more []Grant) { g = append(g, more...) }

	add(grants(domain.RoleAdmin, AnyResource, Allow, AnyAction))
	add(grants(domain.RoleAdmin, Notifications, SelfOnly, AnyAction))

	m := domain.RoleManager
	add(grants(m, AnyResource, Allow, AnyAction))
	add(grants(m, Users, Deny, Create, Update, Delete))
	add(grants(m, Permissions, Deny, Create, Update, Delete))
	add(grants(m, Rules, Deny, Create, Update, Delete))
	add(grants(m, Expiry, Deny, Create, Update, Delete))
	add(grants(m, Backup, Deny, AnyAction))
	add(grants(m, Notifications, SelfOnly, AnyAction))

	t := domain.RoleTailor
	add(grants(t, Customers, Allow, Read, Create, Update))
	add(grants(t, Measurements, Allow, Read, Create, Update))
	add(grants(t, Profiles, Allow, Read, Create))
	add(grants(t, Feedback, Allow, Read, Create))
	add(grants(t, Reminders, Allow, Read, Create, Update))
	add(grants(t, Orders, Allow, Read))
	add(grants(t, Templates, Allow, Read))
	add(grants(t, Rules, Allow, Read))
	add(grants(t, Fittings, SelfOnly, Read, Create, Update, Delete))
	add(grants(t, Tasks, SelfOnly, Read, Update, Delete))
	add(grants(t, Notifications, SelfOnly, AnyAction))

	c := domain.RoleCustomer
	add(grants(c, Templates, Allow, Read))
	add(grants(c, Notifications, SelfOnly, Read, Update))

	return NewPolicy(g...)
}
