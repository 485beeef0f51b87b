package entities

// Role of an authenticated caller, injected by the upstream auth gateway.
type Role string

const (
	RoleAssociate Role = "associate"
	RoleAdmin     Role = "admin"
)

// Actor identifies the authenticated caller of an operation.
//
// Session issuance lives outside this service; the HTTP layer extracts the
// actor from gateway-injected headers.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
