package resolve

import (
	"testing"

	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
)

// =============================================================================
// Service Name Tests
// =============================================================================

func TestServiceName(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"api.github.com", "github"},
		{"www.stripe.com", "stripe"},
		{"app.linear.app", "linear"},
		{"m.example.com", "example"},
		{"www.api.example.com", "example"},
		{"quote.dex.io", "quote-dex"},
		{"example.co.uk", "example-co-uk"}, // .uk is not a known TLD suffix
		{"localhost", "localhost"},
		{"www.com", "com"}, // TLD strip needs a leading label
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := ServiceName(tt.domain); got != tt.want {
				t.Errorf("ServiceName(%q) = %q, want %q", tt.domain, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Root Domain Tests
// =============================================================================

func TestRootDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"api.example.com", "example.com"},
		{"a.b.c.example.com", "example.com"},
		{"example.com", "example.com"},
		{"localhost", "localhost"},
		// Known approximation: multi-label public suffixes collapse.
		{"shop.example.co.uk", "co.uk"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := RootDomain(tt.domain); got != tt.want {
				t.Errorf("RootDomain(%q) = %q, want %q", tt.domain, got, tt.want)
			}
		})
	}
}

func TestSameRootDomain(t *testing.T) {
	if !SameRootDomain("api.example.com", "www.example.com") {
		t.Error("SameRootDomain() = false for sibling subdomains")
	}
	if SameRootDomain("api.example.com", "api.other.com") {
		t.Error("SameRootDomain() = true for different roots")
	}
}

// =============================================================================
// Seed Parsing Tests
// =============================================================================

func TestParseSeed(t *testing.T) {
	s := ParseSeed("https://app.shop.com/login?next=/")
	if s == nil {
		t.Fatal("ParseSeed() = nil for valid seed")
	}
	if s.Host != "app.shop.com" || s.BaseURL != "https://app.shop.com" {
		t.Errorf("ParseSeed() = %+v", s)
	}

	if ParseSeed("") != nil {
		t.Error("ParseSeed(\"\") should be nil")
	}
	if ParseSeed("://bad") != nil {
		t.Error("ParseSeed() on unparsable seed should be nil")
	}
	if ParseSeed("/relative/path") != nil {
		t.Error("ParseSeed() on hostless seed should be nil")
	}
}

// =============================================================================
// Resolve Tests
// =============================================================================

func TestResolve(t *testing.T) {
	kb := knowledge.Default()

	tests := []struct {
		name           string
		requestDomains []string
		targetDomains  []string
		baseURLs       []string
		seed           *Seed
		want           Result
	}{
		{
			name: "nothing observed",
			want: Result{Service: FallbackService, BaseURL: FallbackBaseURL},
		},
		{
			name: "seed only",
			seed: &Seed{Host: "app.shop.com", BaseURL: "https://app.shop.com"},
			want: Result{Service: "shop", BaseURL: "https://app.shop.com"},
		},
		{
			name:           "api domain matching seed root",
			requestDomains: []string{"api.shop.io", "api.shop.io", "www.shop.io"},
			targetDomains:  []string{"www.shop.io", "api.shop.io"},
			seed:           &Seed{Host: "www.shop.io", BaseURL: "https://www.shop.io"},
			want:           Result{Service: "shop", BaseURL: "https://api.shop.io"},
		},
		{
			name:           "api domain unrelated to seed",
			requestDomains: []string{"api.vendor.com"},
			targetDomains:  []string{"api.vendor.com"},
			seed:           &Seed{Host: "app.other.com", BaseURL: "https://app.other.com"},
			want:           Result{Service: "other", BaseURL: "https://app.other.com"},
		},
		{
			name:           "targets without seed pick most frequent",
			requestDomains: []string{"www.foo.com", "api.foo.com", "api.foo.com"},
			targetDomains:  []string{"www.foo.com", "api.foo.com"},
			want:           Result{Service: "foo", BaseURL: "https://api.foo.com"},
		},
		{
			name:           "frequency tie breaks to first seen",
			requestDomains: []string{"a.example.com", "b.example.com"},
			targetDomains:  []string{"a.example.com", "b.example.com"},
			want:           Result{Service: "a-example", BaseURL: "https://a.example.com"},
		},
		{
			name:     "base url fallback",
			baseURLs: []string{"https://backend.x.dev", "https://other.x.dev"},
			want:     Result{Service: "backend-x", BaseURL: "https://backend.x.dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(kb, tt.requestDomains, tt.targetDomains, tt.baseURLs, tt.seed)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMostFrequent(t *testing.T) {
	tests := []struct {
		name        string
		candidates  []string
		occurrences []string
		want        string
	}{
		{"empty candidates", nil, []string{"a"}, ""},
		{"clear winner", []string{"a", "b"}, []string{"b", "b", "a"}, "b"},
		{"tie goes to earlier candidate", []string{"a", "b"}, []string{"a", "b"}, "a"},
		{"candidate never observed", []string{"a"}, nil, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mostFrequent(tt.candidates, tt.occurrences); got != tt.want {
				t.Errorf("mostFrequent() = %q, want %q", got, tt.want)
			}
		})
	}
}
