package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// Path Predicate Tests
// =============================================================================

func TestIsStaticAssetPath(t *testing.T) {
	kb := Default()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"css file", "/assets/main.css", true},
		{"js bundle", "/static/app.js", true},
		{"font file", "/fonts/inter.woff2", true},
		{"source map", "/static/app.js.map", true},
		{"uppercase extension", "/IMG/LOGO.PNG", true},
		{"favicon prefix", "/favicon.ico", true},
		{"well-known prefix", "/.well-known/assetlinks.json", true},
		{"next data prefix", "/_next/data/build/page.json", true},
		{"service worker", "/sw.js", true},
		{"api path", "/api/v1/users", false},
		{"root", "/", false},
		{"json path", "/v1/config.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kb.IsStaticAssetPath(tt.path); got != tt.want {
				t.Errorf("IsStaticAssetPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Domain Predicate Tests
// =============================================================================

func TestIsSkippedDomain(t *testing.T) {
	kb := Default()

	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{"google analytics", "www.google-analytics.com", true},
		{"segment api", "api.segment.io", true},
		{"stripe js", "js.stripe.com", true},
		{"sentry", "o123.ingest.sentry.io", true},
		{"gtm", "www.googletagmanager.com", true},
		{"substring over-match", "notreally.stripe.com.evil.net", true},
		{"target api host", "api.acme-shop.com", false},
		{"plain app host", "app.internal.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kb.IsSkippedDomain(tt.domain); got != tt.want {
				t.Errorf("IsSkippedDomain(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestIsAPIDomain(t *testing.T) {
	kb := Default()

	tests := []struct {
		domain string
		want   bool
	}{
		{"api.example.com", true},
		{"quote-engine.example.com", true},
		{"user-service.example.com", true},
		{"dev-backend.example.com", true},
		{"staging-backend.example.com", false}, // prefix only counts for IsAPILike
		{"www.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := kb.IsAPIDomain(tt.domain); got != tt.want {
				t.Errorf("IsAPIDomain(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Header Predicate Tests
// =============================================================================

func TestIsAuthLikeHeader(t *testing.T) {
	kb := Default()

	tests := []struct {
		header string
		want   bool
	}{
		{"authorization", true},
		{"Authorization", true},
		{"x-api-key", true},
		{"mudra", true},
		{"x-csrf-token", true},
		{"x-amz-security-token", true},
		{"x-custom-signature", true}, // pattern "sign"
		{"content-type", false},
		{"accept-language", false},
		{"x-request-priority", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := kb.IsAuthLikeHeader(tt.header); got != tt.want {
				t.Errorf("IsAuthLikeHeader(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestIsStandardHeader(t *testing.T) {
	kb := Default()

	if !kb.IsStandardHeader("x-request-id") {
		t.Error("IsStandardHeader(x-request-id) = false, want true")
	}
	if !kb.IsStandardHeader("X-Requested-With") {
		t.Error("IsStandardHeader(X-Requested-With) = false, want true")
	}
	if kb.IsStandardHeader("x-tenant-id") {
		t.Error("IsStandardHeader(x-tenant-id) = true, want false")
	}
}

func TestIsContextHeader(t *testing.T) {
	kb := Default()

	for _, name := range []string{"userid", "tenantid", "x-tenant-id", "x-org-id", "x-workspace-id"} {
		if !kb.IsContextHeader(name) {
			t.Errorf("IsContextHeader(%q) = false, want true", name)
		}
	}
	if kb.IsContextHeader("authorization") {
		t.Error("IsContextHeader(authorization) = true, want false")
	}
}

func TestIsPseudoHeader(t *testing.T) {
	if !IsPseudoHeader(":authority") {
		t.Error("IsPseudoHeader(:authority) = false, want true")
	}
	if IsPseudoHeader("authority") {
		t.Error("IsPseudoHeader(authority) = true, want false")
	}
}

// =============================================================================
// Content Type Tests
// =============================================================================

func TestContentTypePredicates(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantHTML    bool
		wantJSON    bool
	}{
		{"html", "text/html; charset=utf-8", true, false},
		{"xhtml", "application/xhtml+xml", true, false},
		{"json", "application/json", false, true},
		{"text json", "text/json", false, true},
		{"plain", "text/plain", false, false},
		{"empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHTMLContentType(tt.contentType); got != tt.wantHTML {
				t.Errorf("IsHTMLContentType(%q) = %v, want %v", tt.contentType, got, tt.wantHTML)
			}
			if got := IsJSONContentType(tt.contentType); got != tt.wantJSON {
				t.Errorf("IsJSONContentType(%q) = %v, want %v", tt.contentType, got, tt.wantJSON)
			}
		})
	}
}

// =============================================================================
// API Likeness Tests
// =============================================================================

func TestIsAPILike(t *testing.T) {
	kb := Default()

	tests := []struct {
		name        string
		url         string
		method      string
		domain      string
		contentType string
		want        bool
	}{
		{"json response", "https://x.com/anything", "GET", "x.com", "application/json", true},
		{"api url marker", "https://x.com/api/things", "GET", "x.com", "", true},
		{"graphql marker", "https://x.com/graphql", "GET", "x.com", "", true},
		{"mutating method", "https://x.com/submit", "POST", "x.com", "", true},
		{"api host", "https://api.x.com/page", "GET", "api.x.com", "", true},
		{"dev host prefix", "https://dev-x.com/page", "GET", "dev-x.com", "", true},
		{"staging host prefix", "https://staging-x.com/page", "GET", "staging-x.com", "", true},
		{"plain page", "https://x.com/home", "GET", "x.com", "text/plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kb.IsAPILike(tt.url, tt.method, tt.domain, tt.contentType)
			if got != tt.want {
				t.Errorf("IsAPILike(%q, %s) = %v, want %v", tt.url, tt.method, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Refresh Marker Tests
// =============================================================================

func TestIsRefreshURL(t *testing.T) {
	kb := Default()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://auth.x.com/oauth/token", true},
		{"https://x.com/api/auth/refresh", true},
		{"https://x.com/v1/token", true},
		{"https://x.com/OAuth/Token", true},
		{"https://x.com/api/users", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := kb.IsRefreshURL(tt.url); got != tt.want {
				t.Errorf("IsRefreshURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestHasRefreshGrant(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"form grant", "grant_type=refresh_token&refresh_token=abc", true},
		{"json grant", `{"grant_type":"refresh_token","refresh_token":"abc"}`, true},
		{"bare refresh param", "refresh_token=abc", true},
		{"password grant", "grant_type=password&username=u", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRefreshGrant(tt.body); got != tt.want {
				t.Errorf("HasRefreshGrant(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Cookie Predicate Tests
// =============================================================================

func TestIsAuthCookie(t *testing.T) {
	kb := Default()

	tests := []struct {
		cookie string
		want   bool
	}{
		{"sessionid", true},
		{"SessionId", true},
		{"my_auth_cookie", true},
		{"connect.sid", true},
		{"XSRF-TOKEN", true},
		{"theme", false},
		{"locale", false},
	}

	for _, tt := range tests {
		t.Run(tt.cookie, func(t *testing.T) {
			if got := kb.IsAuthCookie(tt.cookie); got != tt.want {
				t.Errorf("IsAuthCookie(%q) = %v, want %v", tt.cookie, got, tt.want)
			}
		})
	}
}

func TestAuthCookieNamesOrder(t *testing.T) {
	names := Default().AuthCookieNames()
	if len(names) == 0 {
		t.Fatal("AuthCookieNames() returned empty list")
	}
	if names[0] != "session" {
		t.Errorf("AuthCookieNames()[0] = %q, want %q", names[0], "session")
	}
}

// =============================================================================
// Overlay Tests
// =============================================================================

func TestExtend(t *testing.T) {
	base := Default()
	extended := base.Extend(&Overlay{
		StaticExtensions: []string{".WASM"},
		SkipDomains:      []string{"tracker.internal"},
		SkipPaths:        []string{"/health"},
	})

	if base.IsStaticAssetPath("/pkg/module.wasm") {
		t.Error("base knowledge picked up overlay extension")
	}
	if !extended.IsStaticAssetPath("/pkg/module.wasm") {
		t.Error("extended knowledge missing overlay extension")
	}
	if !extended.IsSkippedDomain("tracker.internal") {
		t.Error("extended knowledge missing overlay skip domain")
	}
	if !extended.IsStaticAssetPath("/health") {
		t.Error("extended knowledge missing overlay skip path")
	}
	// Defaults survive extension.
	if !extended.IsSkippedDomain("api.segment.io") {
		t.Error("extended knowledge lost default skip domain")
	}
}

func TestExtendNil(t *testing.T) {
	base := Default()
	if base.Extend(nil) != base {
		t.Error("Extend(nil) should return the receiver")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "overlay.yaml")
	yamlData := "static_extensions:\n  - .wasm\nskip_domains:\n  - tracker.internal\n"
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0644); err != nil {
		t.Fatalf("failed to write overlay: %v", err)
	}

	o, err := LoadOverlay(yamlPath)
	if err != nil {
		t.Fatalf("LoadOverlay() error = %v", err)
	}
	if len(o.StaticExtensions) != 1 || o.StaticExtensions[0] != ".wasm" {
		t.Errorf("StaticExtensions = %v, want [.wasm]", o.StaticExtensions)
	}
	if len(o.SkipDomains) != 1 || o.SkipDomains[0] != "tracker.internal" {
		t.Errorf("SkipDomains = %v, want [tracker.internal]", o.SkipDomains)
	}

	jsonPath := filepath.Join(dir, "overlay.json")
	jsonData := `{"skip_paths": ["/internal/"]}`
	if err := os.WriteFile(jsonPath, []byte(jsonData), 0644); err != nil {
		t.Fatalf("failed to write overlay: %v", err)
	}

	o, err = LoadOverlay(jsonPath)
	if err != nil {
		t.Fatalf("LoadOverlay() error = %v", err)
	}
	if len(o.SkipPaths) != 1 || o.SkipPaths[0] != "/internal/" {
		t.Errorf("SkipPaths = %v, want [/internal/]", o.SkipPaths)
	}

	if _, err := LoadOverlay(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadOverlay() on missing file should fail")
	}
}
