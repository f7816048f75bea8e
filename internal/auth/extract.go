package auth

import (
	"strings"

	"github.com/PentesterFlow/APIHarvest/internal/capture"
	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
)

// Extractor accumulates candidate auth material across accepted exchanges:
// auth-like request headers, request cookies, and response set-cookie
// values. Accumulators preserve insertion order.
type Extractor struct {
	kb      *knowledge.Base
	headers *OrderedMap // lowercased header name -> value
	cookies *OrderedMap // cookie name (original case) -> value
	info    *OrderedMap // origin-tagged key -> value
}

// NewExtractor creates an extractor over the given knowledge base.
func NewExtractor(kb *knowledge.Base) *Extractor {
	return &Extractor{
		kb:      kb,
		headers: NewOrderedMap(),
		cookies: NewOrderedMap(),
		info:    NewOrderedMap(),
	}
}

// Collect pulls auth material from one accepted exchange.
func (e *Extractor) Collect(ex capture.Exchange) {
	for _, h := range ex.RequestHeaders {
		name := strings.ToLower(h.Name)

		if knowledge.IsPseudoHeader(name) {
			continue
		}

		if e.kb.IsAuthLikeHeader(name) {
			e.headers.Set(name, h.Value)
			e.info.Set("request_header_"+name, h.Value)
		}

		// Business identifiers ride along even when not auth-like.
		if e.kb.IsContextHeader(name) {
			e.info.Set("request_header_"+name, h.Value)
		}

		// Unrecognized x- headers are worth keeping; first occurrence wins.
		if strings.HasPrefix(name, "x-") && !e.kb.IsStandardHeader(name) && h.Value != "" {
			e.info.SetIfAbsent("request_header_"+name, h.Value)
		}
	}

	for _, c := range ex.RequestCookies {
		e.cookies.Set(c.Name, c.Value)
		e.info.Set("request_cookie_"+c.Name, c.Value)
	}

	for _, h := range ex.ResponseHeaders {
		if strings.ToLower(h.Name) != "set-cookie" {
			continue
		}
		if name, value, ok := splitSetCookie(h.Value); ok {
			e.info.Set("response_setcookie_"+name, value)
		}
	}
}

// splitSetCookie parses one Set-Cookie header value: name before the first
// '=', value up to the first ';' after it. Never split on commas; cookie
// expiry dates contain them.
func splitSetCookie(raw string) (name, value string, ok bool) {
	eq := strings.Index(raw, "=")
	if eq < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(raw[:eq])
	rest := raw[eq+1:]
	if semi := strings.Index(rest, ";"); semi >= 0 {
		value = strings.TrimSpace(rest[:semi])
	} else {
		value = strings.TrimSpace(rest)
	}
	if name == "" || value == "" {
		return "", "", false
	}
	return name, value, true
}

// Headers returns the accumulated auth headers (lowercased names).
func (e *Extractor) Headers() *OrderedMap {
	return e.headers
}

// Cookies returns the accumulated request cookies.
func (e *Extractor) Cookies() *OrderedMap {
	return e.cookies
}

// Info returns the accumulated origin-tagged auth info.
func (e *Extractor) Info() *OrderedMap {
	return e.info
}
