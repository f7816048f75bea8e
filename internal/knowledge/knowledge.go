// Package knowledge holds the static reference data the pipeline consults:
// asset extensions, third-party domains, auth header names and patterns,
// context identifiers, and refresh-endpoint markers. The compiled-in base
// is immutable; overlays produce extended copies.
package knowledge

import "strings"

// Base is one immutable set of knowledge lists. All classification
// predicates hang off it so independent pipelines can share one instance.
type Base struct {
	staticExts   []string
	skipDomains  []string
	skipPaths    []string
	authHeaders  map[string]struct{}
	authPatterns []string
	stdHeaders   map[string]struct{}
	ctxHeaders   map[string]struct{}
	apiMarkers   []string
	hostMarkers  []string
	hostPrefixes []string
	refreshURLs  []string
	cookieNames  []string
	cookieHints  []string
}

// Static asset extensions to skip.
var staticExts = []string{
	".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp",
	".woff", ".woff2", ".ico", ".map", ".ttf", ".eot", ".otf",
	".mp4", ".webm", ".mp3", ".wav", ".ogg",
}

// Third-party domain substrings to skip (analytics, payments, social, etc.).
// Matched as substrings of the host, intentionally broad.
var skipDomains = []string{
	// Analytics & tracking
	"google-analytics.com", "analytics.google.com", "www.google-analytics.com",
	"mixpanel.com", "api-js.mixpanel.com", "mparticle.com", "jssdks.mparticle.com",
	"segment.io", "segment.com", "cdn.segment.com", "api.segment.io",
	"amplitude.com", "api.amplitude.com", "heap.io", "heapanalytics.com",
	"posthog.com", "i.posthog.com", "eu.i.posthog.com", "us.i.posthog.com",
	"plausible.io", "matomo.org", "stats.wp.com",
	// Ads & attribution
	"doubleclick.net", "googletagmanager.com", "googlesyndication.com",
	"facebook.com", "instagram.com", "connect.facebook.net",
	"appsflyer.com", "wa.appsflyer.com", "intentiq.com", "api.intentiq.com",
	"id5-sync.com", "diagnostics.id5-sync.com", "33across.com",
	"btloader.com", "api.btloader.com", "hbwrapper.com",
	"criteo.com", "criteo.net", "taboola.com", "outbrain.com",
	// Payments (third-party, not target APIs)
	"stripe.com", "js.stripe.com", "r.stripe.com", "m.stripe.com",
	"paypal.com", "braintreegateway.com", "adyen.com",
	// Support & engagement
	"intercom.io", "api-iam.intercom.io", "widget.intercom.io",
	"zendesk.com", "freshdesk.com", "drift.com", "crisp.chat",
	// UX & monitoring
	"hotjar.com", "script.hotjar.com", "clarity.ms", "sentry.io",
	"logrocket.io", "smartlook.com", "mouseflow.com",
	// CDNs
	"cdn.jsdelivr.net", "unpkg.com", "cdnjs.cloudflare.com",
	"ajax.googleapis.com", "code.jquery.com",
	// Consent
	"onetrust.com", "geolocation.onetrust.com", "cookielaw.org", "cdn.cookielaw.org",
	"trustarc.com", "evidon.com",
	// Auth providers (third-party SSO, not the target)
	"accounts.google.com", "play.google.com", "stack-auth.com", "api.stack-auth.com",
	"auth0.com", "okta.com", "onelogin.com", "ping.com",
	// Cloudflare
	"cdn-cgi", "challenges.cloudflare.com",
	// TikTok analytics
	"analytics.tiktok.com", "analytics-sg.tiktok.com", "mon.tiktokv.com",
	"mcs.tiktokw.com", "lf16-tiktok-web.tiktokcdn-us.com",
	// Google services
	"www.googletagmanager.com", "www.google.com", "google.com",
	"fonts.googleapis.com", "fonts.gstatic.com", "maps.googleapis.com",
	"www.gstatic.com", "apis.google.com", "ssl.gstatic.com",
	"pagead2.googlesyndication.com", "adservice.google.com",
	"translate.googleapis.com", "firebaseinstallations.googleapis.com",
	// Facebook/Meta
	"graph.facebook.com", "www.facebook.com", "pixel.facebook.com",
	// Twitter
	"platform.twitter.com", "syndication.twitter.com", "analytics.twitter.com",
	// Other common third-party
	"newrelic.com", "nr-data.net", "bam.nr-data.net",
	"fullstory.com", "rs.fullstory.com",
	"launchdarkly.com", "app.launchdarkly.com",
	"datadoghq.com", "browser-intake-datadoghq.com",
	"bugsnag.com", "sessions.bugsnag.com",
	"rollbar.com", "raygun.io", "trackjs.com",
	// Captcha
	"recaptcha.net", "hcaptcha.com",
	// Other
	"branch.io", "app.link", "adjust.com", "kochava.com",
	"applovin.com", "unity3d.com", "chartboost.com",
}

// Path prefixes to skip.
var skipPaths = []string{
	"/cdn-cgi/", "/_next/data/", "/__nextjs", "/sockjs-node/",
	"/favicon", "/manifest.json", "/robots.txt", "/sitemap",
	"/.well-known/", "/apple-app-site-association",
	"/service-worker", "/sw.js", "/workbox-",
}

// Auth header names to capture (exact matches, lowercase).
var authHeaderNames = []string{
	"authorization", "x-api-key", "api-key", "apikey",
	"x-auth-token", "access-token", "x-access-token",
	"token", "x-token", "authtype", "mudra",
	"bearer", "jwt", "x-jwt", "x-jwt-token", "id-token", "id_token",
	"x-id-token", "refresh-token", "x-refresh-token",
	"x-apikey", "x-key", "key", "secret", "x-secret",
	"api-secret", "x-api-secret", "client-secret", "x-client-secret",
	"session", "session-id", "sessionid", "x-session", "x-session-id",
	"x-session-token", "session-token", "csrf", "x-csrf", "x-csrf-token",
	"csrf-token", "x-xsrf-token", "xsrf-token",
	"x-oauth-token", "oauth-token", "x-oauth", "oauth",
	"x-amz-security-token", "x-amz-access-token",
	"x-goog-api-key", "x-rapidapi-key",
	"ocp-apim-subscription-key", "x-functions-key",
	"x-auth", "x-authentication", "x-authorization",
	"x-user-token", "x-app-token", "x-client-token",
	"x-access-key", "x-secret-key", "x-signature",
	"x-request-signature", "signature",
}

// Substring patterns that indicate an auth-related header.
var authHeaderPatterns = []string{
	"auth", "token", "key", "secret", "bearer", "jwt",
	"session", "credential", "password", "signature", "sign",
	"api-", "apikey", "access", "oauth", "csrf", "xsrf",
}

// Standard browser headers that are NOT custom API auth.
var standardHeaders = []string{
	"x-requested-with", "x-forwarded-for", "x-forwarded-host",
	"x-forwarded-proto", "x-real-ip", "x-frame-options",
	"x-content-type-options", "x-xss-protection", "x-ua-compatible",
	"x-dns-prefetch-control", "x-download-options", "x-permitted-cross-domain-policies",
	"x-powered-by", "x-request-id", "x-correlation-id", "x-trace-id",
	"x-amz-cf-id", "x-amz-cf-pop", "x-cache", "x-cache-hits",
}

// Context header names to capture (business identifiers).
var contextHeaderNames = []string{
	"outletid", "userid", "supplierid", "companyid", "tenantid",
	"organizationid", "accountid", "workspaceid", "projectid",
	"x-tenant-id", "x-org-id", "x-workspace-id",
}

// URL substrings that mark API-like requests.
var apiURLMarkers = []string{
	"/api/", "/services/", "/v1/", "/v2/", "/v3/",
	"/graphql", "/order", "/quote", "/swap", "/tokens",
	"/markets", "/user", "/auth", "/account", "/profile",
	"/data", "/query", "/mutation", "/rpc",
}

// Host substrings that mark API-like hosts.
var apiHostMarkers = []string{"api.", "service", "quote"}

// Host prefixes that mark API-like hosts.
var apiHostPrefixes = []string{"dev-", "staging-"}

// URL substrings that mark token-refresh endpoints.
var refreshURLMarkers = []string{
	"/oauth/token",
	"/oauth2/v1/token",
	"/oauth2/v2/token",
	"/oauth2/v3/token",
	"/oauth2/v4/token",
	"/auth/refresh",
	"/auth/token/refresh",
	"/token/refresh",
	"/refresh",
	"/api/auth/refresh",
	"/api/token/refresh",
	"/securetoken.googleapis.com",
	"/v1/token",
	"/v2/token",
}

// Cookie names that carry auth state, in priority order.
var authCookieNames = []string{
	"session", "sessionid", "token", "authtoken", "jwt", "auth",
	"access_token", "accesstoken", "id_token", "refresh_token",
}

// Cookie name substrings that suggest auth relevance.
var authCookieHints = []string{
	"session", "token", "auth", "jwt", "access", "refresh",
	"csrf", "xsrf", "sid", "id_token",
}

var defaultBase = build(nil)

// Default returns the compiled-in knowledge base.
func Default() *Base {
	return defaultBase
}

func toSet(items []string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func build(o *Overlay) *Base {
	b := &Base{
		staticExts:   staticExts,
		skipDomains:  skipDomains,
		skipPaths:    skipPaths,
		authHeaders:  toSet(authHeaderNames),
		authPatterns: authHeaderPatterns,
		stdHeaders:   toSet(standardHeaders),
		ctxHeaders:   toSet(contextHeaderNames),
		apiMarkers:   apiURLMarkers,
		hostMarkers:  apiHostMarkers,
		hostPrefixes: apiHostPrefixes,
		refreshURLs:  refreshURLMarkers,
		cookieNames:  authCookieNames,
		cookieHints:  authCookieHints,
	}

	if o != nil {
		b.staticExts = appendLower(b.staticExts, o.StaticExtensions)
		b.skipDomains = appendLower(b.skipDomains, o.SkipDomains)
		b.skipPaths = appendLower(b.skipPaths, o.SkipPaths)
	}

	return b
}

func appendLower(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, e := range extra {
		out = append(out, strings.ToLower(e))
	}
	return out
}

// IsStaticAssetPath reports whether a lowercased URL path points to a
// static asset or a skip-path prefix.
func (b *Base) IsStaticAssetPath(path string) bool {
	path = strings.ToLower(path)
	for _, ext := range b.staticExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	for _, prefix := range b.skipPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsSkippedDomain reports whether a host belongs to a known third party.
// Substring match, not exact host equality; a host that merely contains
// "stripe.com" as a sub-label is skipped too.
func (b *Base) IsSkippedDomain(domain string) bool {
	lower := strings.ToLower(domain)
	for _, skip := range b.skipDomains {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

// IsAuthLikeHeader reports whether a header name looks like it carries
// credentials or session state.
func (b *Base) IsAuthLikeHeader(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := b.authHeaders[lower]; ok {
		return true
	}
	for _, p := range b.authPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsStandardHeader reports whether a header is a standard browser/proxy
// header rather than custom API auth.
func (b *Base) IsStandardHeader(name string) bool {
	_, ok := b.stdHeaders[strings.ToLower(name)]
	return ok
}

// IsContextHeader reports whether a lowercased header name is a known
// business-identifier header.
func (b *Base) IsContextHeader(name string) bool {
	_, ok := b.ctxHeaders[strings.ToLower(name)]
	return ok
}

// IsPseudoHeader reports whether a name is an HTTP/2 pseudo-header.
func IsPseudoHeader(name string) bool {
	return strings.HasPrefix(name, ":")
}

// IsHTMLContentType reports whether a content type indicates an HTML page.
func IsHTMLContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// IsJSONContentType reports whether a content type indicates JSON.
func IsJSONContentType(contentType string) bool {
	return strings.Contains(contentType, "application/json") ||
		strings.Contains(contentType, "text/json")
}

// IsAPILike reports whether an exchange looks like an API call, from its
// response content type, URL markers, method, and host shape.
func (b *Base) IsAPILike(urlStr, method, domain, contentType string) bool {
	if contentType != "" && IsJSONContentType(contentType) {
		return true
	}

	urlLower := strings.ToLower(urlStr)
	for _, marker := range b.apiMarkers {
		if strings.Contains(urlLower, marker) {
			return true
		}
	}

	switch method {
	case "POST", "PUT", "DELETE", "PATCH":
		return true
	}

	for _, marker := range b.hostMarkers {
		if strings.Contains(domain, marker) {
			return true
		}
	}
	for _, prefix := range b.hostPrefixes {
		if strings.HasPrefix(domain, prefix) {
			return true
		}
	}
	return false
}

// IsAPIDomain reports whether a host looks like a dedicated API host.
// Used by the service resolver; narrower than IsAPILike (no staging- prefix).
func (b *Base) IsAPIDomain(domain string) bool {
	return strings.Contains(domain, "api.") ||
		strings.Contains(domain, "quote") ||
		strings.Contains(domain, "service") ||
		strings.HasPrefix(domain, "dev-")
}

// IsRefreshURL reports whether a lowercased URL contains a refresh-endpoint
// marker.
func (b *Base) IsRefreshURL(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	for _, marker := range b.refreshURLs {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HasRefreshGrant reports whether a request body carries a refresh-token
// grant, form-encoded or JSON-encoded.
func HasRefreshGrant(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "grant_type=refresh_token") ||
		strings.Contains(lower, `"grant_type":"refresh_token"`) ||
		strings.Contains(lower, "refresh_token=")
}

// AuthCookieNames returns the priority-ordered auth cookie name list.
func (b *Base) AuthCookieNames() []string {
	return b.cookieNames
}

// IsAuthCookie reports whether a cookie name suggests auth relevance.
func (b *Base) IsAuthCookie(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range b.cookieHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
