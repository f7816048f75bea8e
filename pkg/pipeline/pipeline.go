// Package pipeline turns a raw browser network capture into a filtered
// inventory of backend API endpoints and a portable auth descriptor.
//
// One run is a pure function of (capture, optional seed URL): the pipeline
// performs no network I/O and keeps no state across invocations beyond the
// read-only knowledge base. Identical input yields identical output.
package pipeline

import (
	"sort"
	"strings"

	"github.com/PentesterFlow/APIHarvest/internal/auth"
	"github.com/PentesterFlow/APIHarvest/internal/capture"
	"github.com/PentesterFlow/APIHarvest/internal/errors"
	"github.com/PentesterFlow/APIHarvest/internal/filter"
	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
	"github.com/PentesterFlow/APIHarvest/internal/logger"
	"github.com/PentesterFlow/APIHarvest/internal/refresh"
	"github.com/PentesterFlow/APIHarvest/internal/resolve"
)

// Harvester runs the classification pipeline. Safe for concurrent use
// across independent captures; the knowledge base is read-only and all
// per-run state lives in the call.
type Harvester struct {
	config *Config
	kb     *knowledge.Base
	log    *logger.Logger
}

// New creates a harvester.
func New(opts ...Option) (*Harvester, error) {
	h := &Harvester{
		config: DefaultConfig(),
		kb:     knowledge.Default(),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	if err := h.config.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}

	if h.config.Knowledge.OverlayFile != "" {
		overlay, err := knowledge.LoadOverlay(h.config.Knowledge.OverlayFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to load knowledge overlay", err)
		}
		h.kb = h.kb.Extend(overlay)
	}

	if h.log == nil {
		level := logger.InfoLevel
		if lvl, err := logger.ParseLevel(h.config.LogLevel); err == nil && h.config.LogLevel != "" {
			level = lvl
		}
		if h.config.Debug {
			level = logger.DebugLevel
		}
		h.log = logger.New(logger.Config{
			Level:     level,
			Pretty:    true,
			Component: "pipeline",
		})
	}

	return h, nil
}

// Config returns the active configuration.
func (h *Harvester) Config() *Config {
	return h.config
}

// Parse decodes a capture document and runs the pipeline over it.
// Malformed input fails with an input error; no partial dataset is
// returned.
func (h *Harvester) Parse(data []byte, seedURL string) (*ApiDataset, error) {
	c, err := capture.Decode(data)
	if err != nil {
		return nil, err
	}
	return h.ParseCapture(c, seedURL), nil
}

// ParseCapture runs the pipeline over an already-decoded capture. The
// heuristics are best-effort and non-failing: exchanges with unparsable
// URLs are dropped silently, and an empty capture yields the fixed
// fallback service identity.
func (h *Harvester) ParseCapture(c *capture.Capture, seedURL string) *ApiDataset {
	f := filter.New(h.kb, h.log, seedURL)
	ex := auth.NewExtractor(h.kb)

	requests := []AcceptedRequest{}
	endpoints := make(map[string][]AcceptedRequest)

	for _, entry := range c.Log.Entries {
		exchange := capture.Normalize(entry)

		acc, ok := f.Admit(exchange)
		if !ok {
			continue
		}

		ex.Collect(exchange)
		requests = append(requests, *acc)

		key := acc.Host + ":" + acc.Path
		endpoints[key] = append(endpoints[key], *acc)
	}

	requestDomains := make([]string, len(requests))
	for i, r := range requests {
		requestDomains[i] = r.Host
	}

	seed := resolve.ParseSeed(seedURL)
	identity := resolve.Resolve(h.kb, requestDomains, f.TargetDomains(), f.BaseURLs(), seed)

	authMethod := auth.Classify(ex.Headers(), ex.Cookies())

	h.log.Event(logger.InfoLevel).
		Str("service", identity.Service).
		Str("auth_method", authMethod).
		Int("requests", len(requests)).
		Int("endpoints", len(endpoints)).
		Msg("Capture parsed")

	return &ApiDataset{
		Service:     identity.Service,
		BaseURLs:    f.BaseURLs(),
		BaseURL:     identity.BaseURL,
		AuthHeaders: ex.Headers().Map(),
		AuthMethod:  authMethod,
		Cookies:     ex.Cookies().Map(),
		AuthInfo:    ex.Info().Map(),
		Requests:    requests,
		Endpoints:   endpoints,
	}
}

// DetectRefresh scans the raw capture, independent of the relevance filter,
// for a token-refresh exchange. Returns nil when none qualifies.
func (h *Harvester) DetectRefresh(c *capture.Capture) *RefreshConfig {
	return refresh.Detect(h.kb, c.Exchanges())
}

// Descriptor assembles the portable auth descriptor from a dataset and an
// optional refresh template.
func (h *Harvester) Descriptor(ds *ApiDataset, rc *RefreshConfig) *AuthDescriptor {
	return auth.BuildDescriptor(h.kb, ds.Service, ds.BaseURL, ds.AuthMethod,
		ds.AuthHeaders, ds.Cookies, ds.AuthInfo, rc)
}

// Harvest runs the full pipeline: decode, classify, detect refresh, and
// build the descriptor.
func (h *Harvester) Harvest(data []byte, seedURL string) (*ApiDataset, *AuthDescriptor, error) {
	c, err := capture.Decode(data)
	if err != nil {
		return nil, nil, err
	}

	ds := h.ParseCapture(c, seedURL)
	rc := h.DetectRefresh(c)
	return ds, h.Descriptor(ds, rc), nil
}

// DetectAuthMethod classifies plain header/cookie maps. Header names are
// lowercased and keys are visited in sorted order so the result is
// deterministic for map input; callers that care about capture order
// should use the full pipeline.
func DetectAuthMethod(headers, cookies map[string]string) string {
	lowered := make(map[string]string, len(headers))
	for k, v := range headers {
		lowered[strings.ToLower(k)] = v
	}
	return auth.Classify(sortedOrdered(lowered), sortedOrdered(cookies))
}

// ServiceName derives a service slug from a domain.
func ServiceName(domain string) string {
	return resolve.ServiceName(domain)
}

// IsThirdPartyDomain reports whether a host matches the third-party skip
// list.
func IsThirdPartyDomain(domain string) bool {
	return knowledge.Default().IsSkippedDomain(domain)
}

// IsAuthHeader reports whether a header name looks like an auth header.
func IsAuthHeader(name string) bool {
	return knowledge.Default().IsAuthLikeHeader(name)
}

func sortedOrdered(m map[string]string) *auth.OrderedMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	om := auth.NewOrderedMap()
	for _, k := range keys {
		om.Set(k, m[k])
	}
	return om
}
