/**
 * @description
 * Authorization policy for administrative operations. Handlers build an
 * Identity from the validated token and ask the policy for a decision;
 * there are no ambient role lookups inside business logic.
 */
package domain

// Identity describes the authenticated caller.
type Identity struct {
	Subject string
	Role    string
}

// Capability names an administrative action.
type Capability string

// The dispatch job trigger is not listed here: it authenticates with a
// dedicated machine secret, not a caller identity.
const (
	CapRejectApplication   Capability = "reject_application"
	CapDownloadCertificate Capability = "download_certificate"
)

// rolePolicies maps a role to the capabilities it grants.
var rolePolicies = map[string][]Capability{
	"admin": {CapRejectApplication, CapDownloadCertificate},
	"staff": {CapDownloadCertificate},
}

// Authorize reports whether the caller identity is allowed to perform the
// named capability.
func Authorize(id Identity, c Capability) bool {
	for _, granted := range rolePolicies[id.Role] {
		if granted == c {
			return true
		}
	}
	return false
}
