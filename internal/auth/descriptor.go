package auth

import (
	"encoding/json"
	"strings"

	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
	"github.com/PentesterFlow/APIHarvest/internal/refresh"
)

// Descriptor is the portable document describing how to authenticate
// future requests to a service. Absent collections marshal as missing
// fields, never as empty objects, so "nothing found" stays distinguishable
// from "checked, found nothing".
type Descriptor struct {
	Service    string            `json:"service"`
	BaseURL    string            `json:"baseUrl"`
	AuthMethod string            `json:"authMethod"`
	Headers    map[string]string `json:"headers,omitempty"`
	Cookies    map[string]string `json:"cookies,omitempty"`
	Context    map[string]string `json:"context,omitempty"`
	Refresh    *refresh.Config   `json:"refresh,omitempty"`
}

// Substrings marking a header name as a business identifier rather than
// a secret.
var contextPatterns = []string{
	"outletid", "userid", "supplierid", "companyid", "tenantid",
	"organizationid", "accountid", "workspaceid", "projectid",
}

// BuildDescriptor assembles the portable descriptor: secrets go to Headers,
// business identifiers to Context, and cookies are filtered down to
// auth-relevant names.
func BuildDescriptor(kb *knowledge.Base, service, baseURL, authMethod string,
	authHeaders, cookies, authInfo map[string]string, rc *refresh.Config) *Descriptor {

	headers := make(map[string]string)
	context := make(map[string]string)

	for name, value := range authHeaders {
		if isContextName(kb, name) {
			context[name] = value
		} else {
			headers[name] = value
		}
	}

	// Context identifiers the extractor tagged only in auth info.
	for key, value := range authInfo {
		name, ok := strings.CutPrefix(key, "request_header_")
		if !ok {
			continue
		}
		if isContextName(kb, name) {
			context[name] = value
		}
	}

	// Mudra composite tokens embed the user id before the "--" separator.
	if mudra, ok := authHeaders["mudra"]; ok {
		if sep := strings.Index(mudra, "--"); sep >= 0 {
			context["userId"] = mudra[:sep]
		}
	}

	filtered := make(map[string]string)
	for name, value := range cookies {
		if kb.IsAuthCookie(name) {
			filtered[name] = value
		}
	}

	d := &Descriptor{
		Service:    service,
		BaseURL:    baseURL,
		AuthMethod: authMethod,
		Refresh:    rc,
	}
	if len(headers) > 0 {
		d.Headers = headers
	}
	if len(filtered) > 0 {
		d.Cookies = filtered
	}
	if len(context) > 0 {
		d.Context = context
	}
	return d
}

// isContextName checks a lowercased header name against the context
// identifier substrings and the explicit context header names.
func isContextName(kb *knowledge.Base, name string) bool {
	lower := strings.ToLower(name)
	if kb.IsContextHeader(lower) {
		return true
	}
	for _, p := range contextPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Publishable is the secret-free subset of a descriptor, safe to share.
type Publishable struct {
	Service    string `json:"service"`
	BaseURL    string `json:"baseUrl"`
	AuthMethod string `json:"authMethod"`
}

// ExtractPublishable strips everything but service, base URL, and auth
// method from a serialized descriptor.
func ExtractPublishable(descriptorJSON []byte) ([]byte, error) {
	var d Descriptor
	if err := json.Unmarshal(descriptorJSON, &d); err != nil {
		return nil, err
	}
	return json.MarshalIndent(Publishable{
		Service:    d.Service,
		BaseURL:    d.BaseURL,
		AuthMethod: d.AuthMethod,
	}, "", "  ")
}
