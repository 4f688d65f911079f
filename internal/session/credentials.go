package session

import "github.com/railtrace/railway-assets/internal/rbac"

// Credential is one entry of the fixed demo credential table. The table
// serves both the pure-local login path and the seeding of remote profiles,
// and must stay identical in both usages.
type Credential struct {
	Email    string
	Password string
	Name     string
	Role     rbac.Role
	Division string
	Section  string
}

// demoCredentials is the local credential table: one entry per role.
// Matching is exact and case-sensitive on both email and password.
var demoCredentials = []Credential{
	{Email: "admin@railway.gov.in", Password: "admin123", Name: "Admin User", Role: rbac.RoleAdmin},
	{Email: "drm@railway.gov.in", Password: "drm123", Name: "DRM Northern", Role: rbac.RoleDRM, Division: "Northern"},
	{Email: "srden@railway.gov.in", Password: "srden123", Name: "Sr. DEN Delhi", Role: rbac.RoleSrDEN, Division: "Northern"},
	{Email: "den@railway.gov.in", Password: "den123", Name: "DEN Delhi", Role: rbac.RoleDEN, Division: "Northern", Section: "Delhi"},
	{Email: "inspector@railway.gov.in", Password: "inspector123", Name: "Track Inspector", Role: rbac.RoleInspector, Division: "Northern", Section: "Delhi"},
	{Email: "manufacturer@railway.gov.in", Password: "manufacturer123", Name: "Rail Works Ltd", Role: rbac.RoleManufacturer},
}

func lookupCredential(email, password string) (Credential, bool) {
	for _, cred := range demoCredentials {
		if cred.Email == email && cred.Password == password {
			return cred, true
		}
	}
	return Credential{}, false
}

func credentialByEmail(email string) (Credential, bool) {
	for _, cred := range demoCredentials {
		if cred.Email == email {
			return cred, true
		}
	}
	return Credential{}, false
}

// DemoCredentials returns a copy of the credential table for seeding.
func DemoCredentials() []Credential {
	creds := make([]Credential, len(demoCredentials))
	copy(creds, demoCredentials)
	return creds
}
