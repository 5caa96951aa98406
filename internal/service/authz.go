package service

import "github.com/and161185/admin-console/internal/model"

// Redirect targets used by the authorization gate.
const (
	PathLogin = "/login"
	PathHome  = "/"
)

// Decision is the outcome of an authorization check: either the caller may
// proceed, or it should be sent to RedirectTo.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Authorize is the stateless gate consulted before every protected resource.
// No principal redirects to the login entry point; a role mismatch redirects
// to the default landing resource. required == "" means any authenticated
// principal is acceptable. The gate holds no memory of prior decisions.
func Authorize(p *model.Principal, required model.Role) Decision {
	if p == nil {
		return Decision{RedirectTo: PathLogin}
	}
	if required != "" && p.Role != required {
		return Decision{RedirectTo: PathHome}
	}
	return Decision{Allowed: true}
}
