package rbac

// NavItem is a single sidebar entry. Roles is the set of roles that may see
// the entry; the table below is defined once and never mutated at runtime.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
	Roles []Role `json:"roles"`
}

// navItems is the static navigation table. Order matters: NavItemsForRole
// preserves definition order, so the sidebar renders the same sequence for
// every role that shares an entry.
var navItems = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "layout-dashboard", Roles: []Role{RoleAdmin, RoleDRM, RoleSrDEN, RoleDEN, RoleInspector, RoleManufacturer}},
	{Label: "User Management", Path: "/users", Icon: "users", Roles: []Role{RoleAdmin}},
	{Label: "Roles & Permissions", Path: "/roles", Icon: "shield", Roles: []Role{RoleAdmin}},
	{Label: "Scan Products", Path: "/scan", Icon: "qr-code", Roles: []Role{RoleInspector}},
	{Label: "Record Inspection", Path: "/inspections/new", Icon: "clipboard-check", Roles: []Role{RoleInspector}},
	{Label: "Request Products", Path: "/requests", Icon: "package-plus", Roles: []Role{RoleInspector}},
	{Label: "Inspection History", Path: "/inspections", Icon: "history", Roles: []Role{RoleAdmin, RoleDRM, RoleSrDEN, RoleDEN, RoleInspector}},
	{Label: "Approvals", Path: "/approvals", Icon: "check-circle", Roles: []Role{RoleAdmin, RoleDRM, RoleSrDEN, RoleDEN}},
	{Label: "Inventory", Path: "/inventory", Icon: "warehouse", Roles: []Role{RoleAdmin, RoleManufacturer}},
	{Label: "Reports", Path: "/reports", Icon: "bar-chart", Roles: []Role{RoleAdmin, RoleDRM, RoleSrDEN, RoleManufacturer}},
	{Label: "Vendors", Path: "/vendors", Icon: "building", Roles: []Role{RoleAdmin, RoleDRM}},
	{Label: "Settings", Path: "/settings", Icon: "settings", Roles: []Role{RoleAdmin}},
}

// NavItemsForRole filters the navigation table to entries visible to role,
// preserving definition order. The result is a fresh slice; callers re-invoke
// on role change rather than holding a live view.
func NavItemsForRole(role Role) []NavItem {
	items := make([]NavItem, 0, len(navItems))
	for _, item := range navItems {
		for _, r := range item.Roles {
			if r == role {
				items = append(items, item)
				break
			}
		}
	}
	return items
}

// AllNavItems returns a copy of the full navigation table, used by the role
// catalog endpoint.
func AllNavItems() []NavItem {
	items := make([]NavItem, len(navItems))
	copy(items, navItems)
	return items
}
