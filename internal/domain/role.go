package domain

import "strings"

// Role is the canonical professional track a learner is placed on.
type Role string

const (
	RoleBusiness   Role = "Business"
	RoleProduct    Role = "Product"
	RoleDeveloper  Role = "Developer"
	RoleCXO        Role = "CXO"
	RoleArchitect  Role = "Architect"
	RoleHR         Role = "HR"
	RoleUnassigned Role = "Unassigned"
)

// AssignableRoles lists the roles a learner can end up on after onboarding.
var AssignableRoles = []Role{
	RoleBusiness, RoleProduct, RoleDeveloper, RoleCXO, RoleArchitect, RoleHR,
}

// roleLabels maps questionnaire labels to canonical roles.
var roleLabels = map[string]Role{
	"business strategy & ops": RoleBusiness,
	"product management":      RoleProduct,
	"engineering / dev":       RoleDeveloper,
	"executive leadership":    RoleCXO,
	"system architecture":     RoleArchitect,
	"hr / people ops":         RoleHR,
}

// NormalizeRole converts a questionnaire label or a canonical role name into
// a Role. Unknown input yields RoleUnassigned.
func NormalizeRole(label string) Role {
	key := strings.ToLower(strings.TrimSpace(label))
	if r, ok := roleLabels[key]; ok {
		return r
	}
	for _, r := range AssignableRoles {
		if strings.ToLower(string(r)) == key {
			return r
		}
	}
	return RoleUnassigned
}

// IsAssigned reports whether r is one of the assignable roles.
func (r Role) IsAssigned() bool {
	for _, a := range AssignableRoles {
		if r == a {
			return true
		}
	}
	return false
}
