package pipeline

import (
	"github.com/PentesterFlow/APIHarvest/internal/auth"
	"github.com/PentesterFlow/APIHarvest/internal/filter"
	"github.com/PentesterFlow/APIHarvest/internal/refresh"
)

// AcceptedRequest is one retained request/response record.
type AcceptedRequest = filter.Accepted

// AuthDescriptor is the portable authentication document.
type AuthDescriptor = auth.Descriptor

// RefreshConfig is a token-refresh template.
type RefreshConfig = refresh.Config

// ApiDataset is the aggregate result of one pipeline run.
type ApiDataset struct {
	// Service is a non-empty lowercase hyphenated slug.
	Service string `json:"service"`

	// BaseURLs lists observed scheme://host values in first-seen order.
	BaseURLs []string `json:"baseUrls"`

	// BaseURL is the chosen canonical base URL (no path or query).
	BaseURL string `json:"baseUrl"`

	// AuthHeaders maps lowercase auth header names to values.
	AuthHeaders map[string]string `json:"authHeaders"`

	// AuthMethod is the classified scheme label.
	AuthMethod string `json:"authMethod"`

	// Cookies maps captured request cookie names to values.
	Cookies map[string]string `json:"cookies"`

	// AuthInfo tags every piece of auth material by origin:
	// request_header_*, request_cookie_*, response_setcookie_*.
	AuthInfo map[string]string `json:"authInfo"`

	// Requests holds accepted records in capture order.
	Requests []AcceptedRequest `json:"requests"`

	// Endpoints groups accepted records by "{host}:{path}", preserving
	// capture order within each group.
	Endpoints map[string][]AcceptedRequest `json:"endpoints"`
}
