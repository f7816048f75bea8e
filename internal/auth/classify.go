package auth

import "strings"

// UnknownMethod is returned when nothing matches; not an error.
const UnknownMethod = "Unknown (may need login)"

// cookiePriority is the exact-match cookie name list for rule 11, checked
// in this order.
var cookiePriority = []string{
	"session", "sessionid", "token", "authtoken", "jwt", "auth",
	"access_token", "accesstoken", "id_token", "refresh_token",
}

// Classify maps the accumulated auth headers and cookies to a human-readable
// scheme label. The rules form an ordered decision list; the first match
// wins, and "first" within a rule follows insertion order of the maps.
// Best-effort pattern matching, never a security guarantee.
func Classify(headers, cookies *OrderedMap) string {
	headerNames := headers.Keys()

	// Bearer token by value prefix.
	for _, name := range headerNames {
		v, _ := headers.Get(name)
		if strings.HasPrefix(strings.ToLower(v), "bearer ") {
			return "Bearer Token"
		}
	}

	// API key variants.
	for _, name := range headerNames {
		if strings.Contains(name, "api-key") || strings.Contains(name, "apikey") ||
			name == "x-api-key" || name == "x-key" {
			return "API Key (" + name + ")"
		}
	}

	// JWT variants.
	for _, name := range headerNames {
		if strings.Contains(name, "jwt") || strings.Contains(name, "id-token") ||
			strings.Contains(name, "id_token") {
			return "JWT (" + name + ")"
		}
	}

	// Standard Authorization header.
	if v, ok := headers.Get("authorization"); ok {
		lower := strings.ToLower(v)
		switch {
		case strings.HasPrefix(lower, "basic "):
			return "Basic Auth"
		case strings.HasPrefix(lower, "digest "):
			return "Digest Auth"
		default:
			return "Authorization Header"
		}
	}

	// Session/CSRF tokens.
	for _, name := range headerNames {
		if strings.Contains(name, "session") || strings.Contains(name, "csrf") ||
			strings.Contains(name, "xsrf") {
			return "Session Token (" + name + ")"
		}
	}

	// AWS request signing.
	for _, name := range headerNames {
		if strings.Contains(name, "amz") {
			return "AWS Signature"
		}
	}

	// Mudra composite token (vendor-specific).
	if headers.Has("mudra") {
		return "Mudra Token"
	}

	// OAuth tokens.
	for _, name := range headerNames {
		if strings.Contains(name, "oauth") {
			return "OAuth (" + name + ")"
		}
	}

	// Generic auth/token headers.
	for _, name := range headerNames {
		if strings.Contains(name, "auth") || strings.Contains(name, "token") {
			return "Custom Token (" + name + ")"
		}
	}

	// Remaining custom x- headers.
	for _, name := range headerNames {
		if strings.HasPrefix(name, "x-") {
			return "Custom Header (" + name + ")"
		}
	}

	// Cookie-based auth, by priority name. The label carries the priority
	// entry, not the captured cookie's original casing.
	cookieNames := cookies.Keys()
	for _, want := range cookiePriority {
		for _, name := range cookieNames {
			if strings.ToLower(name) == want {
				return "Cookie-based (" + want + ")"
			}
		}
	}

	// Any auth-like cookie.
	for _, name := range cookieNames {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "auth") || strings.Contains(lower, "token") ||
			strings.Contains(lower, "session") {
			return "Cookie-based (" + name + ")"
		}
	}

	return UnknownMethod
}
