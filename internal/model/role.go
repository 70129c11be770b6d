package model

// Role represents the kind of account a user holds
type Role string

// Role codes as constants
const (
	RoleCustomer Role = "customer"
	RoleClerk    Role = "clerk"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleClerk, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsStaff is true for every role that works inside a boutique.
func (r Role) IsStaff() bool {
	return r == RoleClerk || r == RoleManager || r == RoleAdmin
}

// Privileges returns the privilege codes granted to the role.
func (r Role) Privileges() []Privilege {
	return rolePrivileges[r]
}

// HasPrivilege checks if the role grants a specific privilege
func (r Role) HasPrivilege(p Privilege) bool {
	for _, granted := range rolePrivileges[r] {
		if granted == p {
			return true
		}
	}
	return false
}
