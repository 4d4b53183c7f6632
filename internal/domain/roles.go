package domain

// Permission is an opaque label gating an operation.
type Permission string

const (
	PermissionGetUsers     Permission = "getUsers"
	PermissionManageUsers  Permission = "manageUsers"
	PermissionGetEvents    Permission = "getEvents"
	PermissionManageEvents Permission = "manageEvents"
)

// Role is an application role carried by every user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// PermissionChecker answers whether a principal may perform an action.
type PermissionChecker interface {
	HasRight(p Permission) bool
}

// roleRightSet maps each role to the permissions it grants. Built once at init and never mutated.
type roleRightSet map[Role]map[Permission]struct{}

var roleRights = newRoleRights(map[Role][]Permission{
	RoleUser:  {PermissionGetEvents},
	RoleAdmin: {PermissionGetUsers, PermissionManageUsers, PermissionGetEvents, PermissionManageEvents},
})

func newRoleRights(table map[Role][]Permission) roleRightSet {
	rr := make(roleRightSet, len(table))
	for role, perms := range table {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		rr[role] = set
	}
	return rr
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRights[r]
	return ok
}

// HasRight implements PermissionChecker.
func (r Role) HasRight(p Permission) bool {
	_, ok := roleRights[r][p]
	return ok
}

// Principal is the authenticated identity derived from a bearer token.
type Principal struct {
	UserID int64
	Role   Role
}

// HasRight implements PermissionChecker using the principal's role.
func (p Principal) HasRight(perm Permission) bool {
	return p.Role.HasRight(perm)
}
