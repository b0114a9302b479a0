// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role is a claim embedded in issued tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	// RoleAdmin marks staff users, who may delete orders.
	RoleAdmin Role = "admin"
)

// Roles is the role set of one user.
type Roles []Role

// Contains reports whether role is in the set.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Strings returns the roles in token claim form.
func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}

	return out
}

// RolesFor derives the roles of a user from its profile type and staff flag.
func RolesFor(profileType ProfileType, isStaff bool) Roles {
	roles := Roles{}
	switch profileType {
	case ProfileTypeCustomer:
		roles = append(roles, RoleCustomer)
	case ProfileTypeBusiness:
		roles = append(roles, RoleBusiness)
	}
	if isStaff {
		roles = append(roles, RoleAdmin)
	}

	return roles
}
