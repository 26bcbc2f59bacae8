// internal/storefront/guard.go
package storefront

// AccessLevel is the access requirement a view declares
type AccessLevel int

const (
	// AccessPublic views render for everyone
	AccessPublic AccessLevel = iota
	// AccessAuthenticated views require a signed-in user
	AccessAuthenticated
	// AccessAdmin views require a signed-in admin
	AccessAdmin
)

// Redirect targets for denied navigation
const (
	RedirectLogin = "/login"
	RedirectHome  = "/"
)

// GuardDecision is the outcome of a navigation check
type GuardDecision struct {
	Render     bool
	RedirectTo string
	Notice     string
}

// Guard decides, per navigation, whether to render the requested view or
// redirect. It trusts the locally cached session and never calls the server;
// the server independently re-checks the role on every privileged call, so
// this check is a fast local gate, not the authority.
func Guard(session *SessionInfo, required AccessLevel) GuardDecision {
	switch required {
	case AccessAuthenticated:
		if session == nil {
			return GuardDecision{RedirectTo: RedirectLogin, Notice: "Please log in to continue"}
		}
	case AccessAdmin:
		if session == nil {
			return GuardDecision{RedirectTo: RedirectLogin, Notice: "Please log in to continue"}
		}
		if !session.IsAdmin {
			return GuardDecision{RedirectTo: RedirectHome, Notice: "Not authorized to view this page"}
		}
	}

	return GuardDecision{Render: true}
}
