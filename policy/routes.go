package policy

import (
	"strings"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Rule maps a path prefix onto the roles allowed beneath it.
type Rule struct {
	Prefix  string
	Allowed []session.Role
}

// Allows reports whether the role is in the rule's allowed set.
func (r Rule) Allows(role session.Role) bool {
	for _, a := range r.Allowed {
		if a == role {
			return true
		}
	}
	return false
}

// Table is the ordered route policy, defined once at startup. Matching
// is plain prefix matching and the first declared rule wins, so more
// specific prefixes must be declared before any shorter prefix that
// covers them.
type Table struct {
	rules []Rule
}

// NewTable builds a route table from rules in declaration order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Match returns the first rule whose prefix the path starts with.
func (t *Table) Match(path string) (Rule, bool) {
	for _, r := range t.rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// Default is the storefront dashboard's route policy.
func Default() *Table {
	return NewTable(
		Rule{Prefix: "/products", Allowed: []session.Role{session.RoleAdmin, session.RoleManager}},
		Rule{Prefix: "/categories", Allowed: []session.Role{session.RoleAdmin}},
		Rule{Prefix: "/users", Allowed: []session.Role{session.RoleAdmin}},
	)
}
