package rbac

// Role is one of the six fixed user categories governing navigation and
// permissions. The set is closed: no user exists outside it.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDRM          Role = "drm"
	RoleSrDEN        Role = "sr_den"
	RoleDEN          Role = "den"
	RoleInspector    Role = "inspector"
	RoleManufacturer Role = "manufacturer"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleAdmin,
	RoleDRM,
	RoleSrDEN,
	RoleDEN,
	RoleInspector,
	RoleManufacturer,
}

var roleLabels = map[Role]string{
	RoleAdmin:        "Administrator",
	RoleDRM:          "Divisional Railway Manager",
	RoleSrDEN:        "Senior Divisional Engineer",
	RoleDEN:          "Divisional Engineer",
	RoleInspector:    "Inspector",
	RoleManufacturer: "Manufacturer",
}

func (r Role) String() string {
	return string(r)
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDRM, RoleSrDEN, RoleDEN, RoleInspector, RoleManufacturer:
		return true
	}
	return false
}

// Label returns the human-readable role name for display.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// ParseRole converts a stored role string into a Role, reporting whether it
// is one of the six known values.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
