// Package gate holds the access decision for the admin area: which paths are
// gated at all, how a gated path is classified, and what happens to a request
// given the state of its session token.
package gate

import "strings"

const (
	LoginPath         = "/login"
	ProtectedAreaPath = "/admin"
)

type RouteClass int

const (
	RouteOther RouteClass = iota
	RouteLoginPage
	RouteProtectedArea
)

func (c RouteClass) String() string {
	switch c {
	case RouteLoginPage:
		return "login_page"
	case RouteProtectedArea:
		return "protected_area"
	default:
		return "other"
	}
}

// Gated is the authoritative pre-filter: only the login page and the
// protected area (including bare /admin) ever reach the access gate.
func Gated(path string) bool {
	return path == LoginPath || isProtectedArea(path)
}

// Classify maps a request path to its route class. For gated paths it never
// returns RouteOther; that branch only exists for callers that skip Gated.
func Classify(path string) RouteClass {
	switch {
	case path == LoginPath:
		return RouteLoginPage
	case isProtectedArea(path):
		return RouteProtectedArea
	default:
		return RouteOther
	}
}

// /admin and /admin/..., but not /administrator
func isProtectedArea(path string) bool {
	return path == ProtectedAreaPath || strings.HasPrefix(path, ProtectedAreaPath+"/")
}
