// Package resolve picks the canonical service name and base URL from the
// accepted traffic and an optional seed URL.
package resolve

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
)

// Fallbacks when nothing usable was observed.
const (
	FallbackService = "unknown-api"
	FallbackBaseURL = "https://api.example.com"
)

// Seed is the parsed optional seed URL.
type Seed struct {
	Host    string
	BaseURL string
}

// ParseSeed extracts the seed host and base URL from a raw seed string.
// Returns nil when the seed is empty or unparsable.
func ParseSeed(seedURL string) *Seed {
	if seedURL == "" {
		return nil
	}
	u, err := url.Parse(seedURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return &Seed{
		Host:    u.Host,
		BaseURL: u.Scheme + "://" + u.Host,
	}
}

// Result is the chosen service identity.
type Result struct {
	Service string
	BaseURL string
}

// Resolve picks the service name and canonical base URL.
//
// requestDomains holds one host per accepted request in capture order and
// drives the frequency counts; targetDomains and baseURLs are in first-seen
// order so that ties and "first observed" picks are deterministic.
func Resolve(kb *knowledge.Base, requestDomains, targetDomains, baseURLs []string, seed *Seed) Result {
	// API-looking domains among the targets, first-seen order preserved.
	var apiDomains []string
	for _, d := range targetDomains {
		if kb.IsAPIDomain(d) {
			apiDomains = append(apiDomains, d)
		}
	}

	bestAPIDomain := mostFrequent(apiDomains, requestDomains)

	switch {
	case bestAPIDomain != "" && seed != nil:
		if SameRootDomain(bestAPIDomain, seed.Host) {
			return Result{Service: ServiceName(seed.Host), BaseURL: "https://" + bestAPIDomain}
		}
		if seed.BaseURL != "" {
			return Result{Service: ServiceName(seed.Host), BaseURL: seed.BaseURL}
		}
		return Result{Service: FallbackService, BaseURL: FallbackBaseURL}

	case seed != nil:
		baseURL := seed.BaseURL
		if baseURL == "" {
			baseURL = FallbackBaseURL
		}
		return Result{Service: ServiceName(seed.Host), BaseURL: baseURL}

	case len(targetDomains) > 0:
		main := mostFrequent(targetDomains, requestDomains)
		if main == "" {
			return Result{Service: FallbackService, BaseURL: FallbackBaseURL}
		}
		return Result{Service: ServiceName(main), BaseURL: "https://" + main}

	case len(baseURLs) > 0:
		first := baseURLs[0]
		u, err := url.Parse(first)
		if err != nil || u.Host == "" {
			return Result{Service: FallbackService, BaseURL: FallbackBaseURL}
		}
		return Result{Service: ServiceName(u.Host), BaseURL: first}

	default:
		return Result{Service: FallbackService, BaseURL: FallbackBaseURL}
	}
}

// mostFrequent returns the candidate occurring most often in occurrences.
// Candidates are checked in slice order, so ties break toward the earlier
// (first-seen) candidate. Returns "" for an empty candidate list.
func mostFrequent(candidates, occurrences []string) string {
	if len(candidates) == 0 {
		return ""
	}

	counts := make(map[string]int, len(candidates))
	for _, o := range occurrences {
		counts[o]++
	}

	best := ""
	bestCount := -1
	for _, c := range candidates {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

// RootDomain approximates the registrable domain as the last two
// dot-separated labels ("api.example.com" -> "example.com"). Known
// limitation: multi-label public suffixes such as .co.uk are misread;
// kept as-is because same-site comparisons depend on this exact behavior.
func RootDomain(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return domain
}

// SameRootDomain reports whether two hosts share the same root domain.
func SameRootDomain(a, b string) bool {
	return RootDomain(a) == RootDomain(b)
}

var tldSuffix = regexp.MustCompile(`\.(com|org|net|co|io|ai|app|sg|dev|xyz|gg|fm|tv|me|so|to)\.?$`)

// ServiceName derives a lowercase hyphenated service slug from a host:
// strip one leading www./api./app./m. label, strip one trailing known TLD,
// then replace dots with hyphens.
func ServiceName(domain string) string {
	name := domain
	for _, prefix := range []string{"www.", "api.", "app.", "m."} {
		name = strings.TrimPrefix(name, prefix)
	}

	name = tldSuffix.ReplaceAllString(name, "")
	name = strings.ToLower(strings.ReplaceAll(name, ".", "-"))

	if name == "" {
		return FallbackService
	}
	return name
}
