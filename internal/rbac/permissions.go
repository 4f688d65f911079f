package rbac

// Permission ids guarded by the authorization middleware. The catalog below
// is reference data, not derived from user records.
const (
	PermDashboardView      = "dashboard_view"
	PermUsersManage        = "users_manage"
	PermRolesManage        = "roles_manage"
	PermProductsScan       = "products_scan"
	PermProductsRequest    = "products_request"
	PermInspectionsRecord  = "inspections_record"
	PermInspectionsView    = "inspections_view"
	PermInspectionsApprove = "inspections_approve"
	PermInventoryManage    = "inventory_manage"
	PermReportsGenerate    = "reports_generate"
	PermVendorsManage      = "vendors_manage"
	PermSettingsManage     = "settings_manage"
)

// Permission describes one entry of the permission catalog for display on
// the roles page.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var permissionCatalog = []Permission{
	{ID: PermDashboardView, Name: "View Dashboard", Description: "Access the dashboard summary cards", Category: "general"},
	{ID: PermUsersManage, Name: "Manage Users", Description: "Create, update and deactivate user accounts", Category: "administration"},
	{ID: PermRolesManage, Name: "Manage Roles", Description: "View role and permission assignments", Category: "administration"},
	{ID: PermProductsScan, Name: "Scan Products", Description: "Scan product QR codes in the field", Category: "inspection"},
	{ID: PermProductsRequest, Name: "Request Products", Description: "Raise product supply requests to manufacturers", Category: "inspection"},
	{ID: PermInspectionsRecord, Name: "Record Inspections", Description: "File new track and asset inspection records", Category: "inspection"},
	{ID: PermInspectionsView, Name: "View Inspections", Description: "Browse inspection history and listings", Category: "inspection"},
	{ID: PermInspectionsApprove, Name: "Approve Inspections", Description: "Approve or return filed inspection records", Category: "oversight"},
	{ID: PermInventoryManage, Name: "Manage Inventory", Description: "Maintain manufactured product inventory", Category: "manufacturing"},
	{ID: PermReportsGenerate, Name: "Generate Reports", Description: "Produce divisional and production reports", Category: "oversight"},
	{ID: PermVendorsManage, Name: "Manage Vendors", Description: "Maintain the approved vendor registry", Category: "administration"},
	{ID: PermSettingsManage, Name: "Manage Settings", Description: "Change system-wide configuration", Category: "administration"},
}

// rolePermissions maps each role to its permission-id set. Both this table
// and the catalog are immutable after process start; lookups need no locking.
var rolePermissions = map[Role][]string{
	RoleAdmin: {
		PermDashboardView,
		PermUsersManage,
		PermRolesManage,
		PermProductsScan,
		PermProductsRequest,
		PermInspectionsRecord,
		PermInspectionsView,
		PermInspectionsApprove,
		PermInventoryManage,
		PermReportsGenerate,
		PermVendorsManage,
		PermSettingsManage,
	},
	RoleDRM: {
		PermDashboardView,
		PermInspectionsView,
		PermInspectionsApprove,
		PermReportsGenerate,
		PermVendorsManage,
	},
	RoleSrDEN: {
		PermDashboardView,
		PermInspectionsView,
		PermInspectionsApprove,
		PermReportsGenerate,
	},
	RoleDEN: {
		PermDashboardView,
		PermInspectionsView,
		PermInspectionsApprove,
	},
	RoleInspector: {
		PermDashboardView,
		PermProductsScan,
		PermProductsRequest,
		PermInspectionsRecord,
		PermInspectionsView,
	},
	RoleManufacturer: {
		PermInventoryManage,
		PermReportsGenerate,
	},
}

// PermissionsForRole returns the permission-id set for role in table order.
// Unknown roles get an empty set rather than an error: the enum is closed,
// but an unmapped role must degrade to "no permissions".
func PermissionsForRole(role Role) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether role carries the given permission id.
func HasPermission(role Role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// PermissionCatalog returns a copy of the full permission reference table.
func PermissionCatalog() []Permission {
	catalog := make([]Permission, len(permissionCatalog))
	copy(catalog, permissionCatalog)
	return catalog
}
