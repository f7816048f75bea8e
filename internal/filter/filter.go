// Package filter implements the per-exchange relevance decision: which
// captured exchanges belong to the application under study and which are
// static assets, third-party noise, or page navigations.
package filter

import (
	"net/url"
	"strings"

	"github.com/PentesterFlow/APIHarvest/internal/capture"
	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
	"github.com/PentesterFlow/APIHarvest/internal/logger"
	"github.com/PentesterFlow/APIHarvest/internal/resolve"
)

// Accepted is the retained record for an exchange that passed the filter.
type Accepted struct {
	Method              string `json:"method"`
	URL                 string `json:"url"`
	Path                string `json:"path"`
	Host                string `json:"host"`
	Status              int    `json:"status"`
	ResponseContentType string `json:"responseContentType,omitempty"`
	RequestBody         string `json:"requestBody,omitempty"`
	ResponseBody        string `json:"responseBody,omitempty"`
}

// Filter decides exchange relevance. It carries running state: the set of
// domains already accepted as targets, which makes admission order-dependent
// on capture order. Process exchanges strictly in capture order.
type Filter struct {
	kb       *knowledge.Base
	log      *logger.Logger
	seedHost string

	targets     map[string]struct{}
	targetOrder []string

	baseURLSeen map[string]struct{}
	baseURLs    []string
}

// New creates a filter. seedURL is optional; an unparsable seed is treated
// as absent.
func New(kb *knowledge.Base, log *logger.Logger, seedURL string) *Filter {
	f := &Filter{
		kb:          kb,
		log:         log,
		targets:     make(map[string]struct{}),
		baseURLSeen: make(map[string]struct{}),
	}
	if log == nil {
		f.log = logger.Nop()
	}
	if seedURL != "" {
		if u, err := url.Parse(seedURL); err == nil && u.Host != "" {
			f.seedHost = u.Host
		}
	}
	return f
}

// Admit applies the relevance rules to one exchange. It returns the retained
// record and true when the exchange is kept. Decisions apply in a fixed
// order; the first matching drop rule wins.
func (f *Filter) Admit(ex capture.Exchange) (*Accepted, bool) {
	if f.isStaticAsset(ex.URL) {
		f.log.DropEvent(ex.URL, "static_asset")
		return nil, false
	}

	parsed, err := url.Parse(ex.URL)
	if err != nil || parsed.Host == "" {
		f.log.DropEvent(ex.URL, "unparsable_url")
		return nil, false
	}
	domain := parsed.Host

	if f.kb.IsSkippedDomain(domain) {
		f.log.DropEvent(ex.URL, "third_party")
		return nil, false
	}

	// GET + HTML is a page navigation, not an API call.
	if ex.Method == "GET" && ex.ContentType != "" && knowledge.IsHTMLContentType(ex.ContentType) {
		f.log.DropEvent(ex.URL, "html_navigation")
		return nil, false
	}

	isSeedRelated := f.seedHost != "" && resolve.SameRootDomain(domain, f.seedHost)

	_, isTarget := f.targets[domain]
	isTargetRelated := isTarget || isSeedRelated

	// Non-API exchanges are tolerated only before any target domain is
	// known, or when they belong to an established target. The first
	// domains in the capture are therefore admitted unconditionally.
	if !f.kb.IsAPILike(ex.URL, ex.Method, domain, ex.ContentType) &&
		len(f.targets) > 0 && !isTargetRelated {
		f.log.DropEvent(ex.URL, "off_target")
		return nil, false
	}

	f.addTarget(domain)
	f.addBaseURL(parsed.Scheme + "://" + domain)
	f.log.AcceptEvent(ex.Method, ex.URL, domain)

	return &Accepted{
		Method:              ex.Method,
		URL:                 ex.URL,
		Path:                parsed.Path,
		Host:                domain,
		Status:              ex.Status,
		ResponseContentType: ex.ContentType,
		RequestBody:         ex.RequestBody,
		ResponseBody:        ex.ResponseBody,
	}, true
}

// isStaticAsset checks the URL path against asset extensions and skip
// prefixes. Unparsable URLs are not static; the parse check drops them.
func (f *Filter) isStaticAsset(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return f.kb.IsStaticAssetPath(strings.ToLower(u.Path))
}

func (f *Filter) addTarget(domain string) {
	if _, ok := f.targets[domain]; ok {
		return
	}
	f.targets[domain] = struct{}{}
	f.targetOrder = append(f.targetOrder, domain)
}

func (f *Filter) addBaseURL(baseURL string) {
	if _, ok := f.baseURLSeen[baseURL]; ok {
		return
	}
	f.baseURLSeen[baseURL] = struct{}{}
	f.baseURLs = append(f.baseURLs, baseURL)
}

// TargetDomains returns accepted domains in first-seen order.
func (f *Filter) TargetDomains() []string {
	out := make([]string, len(f.targetOrder))
	copy(out, f.targetOrder)
	return out
}

// BaseURLs returns observed scheme://host base URLs in first-seen order.
func (f *Filter) BaseURLs() []string {
	out := make([]string, len(f.baseURLs))
	copy(out, f.baseURLs)
	return out
}

// SeedHost returns the parsed seed host, "" when absent.
func (f *Filter) SeedHost() string {
	return f.seedHost
}
