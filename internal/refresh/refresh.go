// Package refresh detects token-refresh exchanges and derives a reusable
// refresh template from them.
package refresh

import (
	"encoding/json"
	"strings"

	"github.com/PentesterFlow/APIHarvest/internal/capture"
	"github.com/PentesterFlow/APIHarvest/internal/knowledge"
)

// Placeholder substituted for captured token values in body templates.
const TokenPlaceholder = "${refreshToken}"

// Config is a reusable template for exchanging a refresh token for a new
// access token.
type Config struct {
	Endpoint  string            `json:"endpoint"`
	Method    string            `json:"method"`
	Body      map[string]string `json:"body,omitempty"`
	TokenPath string            `json:"tokenPath,omitempty"`
	ExpiresIn int64             `json:"expiresIn,omitempty"`
}

// Detect scans exchanges in capture order and returns a config for the
// first one that qualifies as a token refresh, or nil. It runs over the
// raw capture, independent of the relevance filter.
func Detect(kb *knowledge.Base, exchanges []capture.Exchange) *Config {
	for _, ex := range exchanges {
		if c := DetectOne(kb, ex.URL, ex.Method, ex.RequestBody, ex.ResponseBody); c != nil {
			return c
		}
	}
	return nil
}

// DetectOne checks a single exchange. It qualifies when the URL contains a
// refresh-endpoint marker or the request body carries a refresh-token grant.
func DetectOne(kb *knowledge.Base, urlStr, method, requestBody, responseBody string) *Config {
	if !kb.IsRefreshURL(urlStr) && !knowledge.HasRefreshGrant(requestBody) {
		return nil
	}

	tokenPath, expiresIn := tokenInfo(responseBody)

	return &Config{
		Endpoint:  urlStr,
		Method:    method,
		Body:      bodyTemplate(requestBody),
		TokenPath: tokenPath,
		ExpiresIn: expiresIn,
	}
}

// tokenInfo reads the new-token field name and expiry from a JSON response
// body. Unparsable bodies yield nothing; detection still succeeds.
func tokenInfo(responseBody string) (tokenPath string, expiresIn int64) {
	if responseBody == "" {
		return "", 0
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(responseBody), &payload); err != nil {
		return "", 0
	}

	for _, field := range []string{"access_token", "token", "id_token"} {
		if _, ok := payload[field]; ok {
			tokenPath = field
			break
		}
	}

	for _, field := range []string{"expires_in", "expiresIn"} {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err == nil {
			expiresIn = n
			break
		}
	}

	return tokenPath, expiresIn
}

// bodyTemplate rebuilds a URL-encoded form body as a parameter map. Keys
// whose name contains "token" have their captured value replaced with the
// placeholder; non-secret parameters such as client_id stay verbatim.
// JSON bodies yield no template.
func bodyTemplate(requestBody string) map[string]string {
	if requestBody == "" || !strings.Contains(requestBody, "=") ||
		strings.HasPrefix(requestBody, "{") {
		return nil
	}

	params := make(map[string]string)
	for _, pair := range strings.Split(requestBody, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(key), "token") {
			params[key] = TokenPlaceholder
		} else {
			params[key] = value
		}
	}

	if len(params) == 0 {
		return nil
	}
	return params
}
