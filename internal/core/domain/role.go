package domain

import "strings"

// Role is the privilege level attached to a User.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// roleRank orders roles from least to most privileged.
var roleRank = map[Role]int{
	RoleUser:    1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Roles lists every valid role, most privileged first.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleUser}
}

// ParseRole maps a caller-supplied role string onto the closed set of roles.
// Matching ignores case and surrounding whitespace. Anything unrecognised
// resolves to RoleUser: bad input lowers privilege instead of failing the request.
func ParseRole(s string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if r.Valid() {
		return r
	}
	return RoleUser
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of min.
// Invalid roles never satisfy any minimum.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[min]
}

func (r Role) String() string {
	return string(r)
}
