package gate

type TokenState int

const (
	TokenAbsent TokenState = iota
	TokenInvalid
	TokenValid
)

func (s TokenState) String() string {
	switch s {
	case TokenInvalid:
		return "invalid"
	case TokenValid:
		return "valid"
	default:
		return "absent"
	}
}

type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	RedirectToProtectedArea
)

// Decision is what the gate does with a request. ClearCookie is applied
// before the outcome, so a stale cookie can be dropped on a redirect too.
type Decision struct {
	Outcome     Outcome
	ClearCookie bool
}

var (
	AllowDecision                   = Decision{Outcome: Allow}
	AllowAndClearCookie             = Decision{Outcome: Allow, ClearCookie: true}
	RedirectToLoginDecision         = Decision{Outcome: RedirectToLogin}
	ClearCookieAndRedirectToLogin   = Decision{Outcome: RedirectToLogin, ClearCookie: true}
	RedirectToProtectedAreaDecision = Decision{Outcome: RedirectToProtectedArea}
)

func (d Decision) String() string {
	var s string
	switch d.Outcome {
	case RedirectToLogin:
		s = "redirect_to_login"
	case RedirectToProtectedArea:
		s = "redirect_to_protected_area"
	default:
		s = "allow"
	}
	if d.ClearCookie {
		s += "_clear_cookie"
	}
	return s
}

type Options struct {
	// ClearStaleCookieOnLogin drops an invalid token presented on the login
	// page. Off by default, which lets the request through untouched.
	ClearStaleCookieOnLogin bool
}

// Decide is a pure function of the token state and the route class.
func Decide(token TokenState, route RouteClass, opts Options) Decision {
	switch route {
	case RouteLoginPage:
		switch token {
		case TokenValid:
			// already logged in, no re-authentication
			return RedirectToProtectedAreaDecision
		case TokenInvalid:
			if opts.ClearStaleCookieOnLogin {
				return AllowAndClearCookie
			}
			return AllowDecision
		default:
			return AllowDecision
		}
	case RouteProtectedArea:
		switch token {
		case TokenValid:
			return AllowDecision
		case TokenInvalid:
			return ClearCookieAndRedirectToLogin
		default:
			return RedirectToLoginDecision
		}
	default:
		return AllowDecision
	}
}
