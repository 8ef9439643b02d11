package middleware

import "strings"

// Client-side routes the API knows about. Everything under /api maps onto
// one of these surfaces for redirect purposes.
const (
	PathLanding   = "/"
	PathAuth      = "/auth"
	PathDashboard = "/dashboard"
	PathServices  = "/services"
	PathOrders    = "/orders"
	PathDelivery  = "/delivery"
	PathProfile   = "/profile"
)

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	PathLanding: true,
	PathAuth:    true,
}

// DecideRedirect returns the route an unauthenticated or misplaced visitor
// should be sent to, or "" to stay put. It is a pure function so the
// navigation rules can be tested without any HTTP machinery: visitors
// without a session are sent to the auth surface from any protected route,
// and visitors with a session are bounced off the auth surface to the
// dashboard.
func DecideRedirect(hasSession bool, path string) string {
	page := pageForPath(path)

	if !hasSession {
		if publicPaths[page] {
			return ""
		}
		return PathAuth
	}

	if page == PathAuth {
		return PathDashboard
	}
	return ""
}

// pageForPath maps an API request path to its client-side surface, so the
// redirect rules operate on pages rather than raw API paths.
func pageForPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/v1")
	if trimmed == "" || trimmed == "/" {
		return PathLanding
	}

	switch {
	case strings.HasPrefix(trimmed, "/auth"):
		return PathAuth
	case strings.HasPrefix(trimmed, "/services"):
		return PathServices
	case strings.HasPrefix(trimmed, "/orders"):
		return PathOrders
	case strings.HasPrefix(trimmed, "/delivery"):
		return PathDelivery
	case strings.HasPrefix(trimmed, "/users"), strings.HasPrefix(trimmed, "/profile"):
		return PathProfile
	case strings.HasPrefix(trimmed, "/dashboard"):
		return PathDashboard
	default:
		return trimmed
	}
}
