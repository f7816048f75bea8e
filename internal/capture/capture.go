package capture

import (
	"encoding/json"
	"strings"

	pe "github.com/PentesterFlow/APIHarvest/internal/errors"
)

// Decode parses a capture document from JSON. Malformed input yields an
// Input error; a valid document with zero entries is not an error.
func Decode(data []byte) (*Capture, error) {
	// Probe for the log key first so that an unrelated JSON object is
	// rejected instead of silently decoding to an empty capture.
	var probe struct {
		Log *Log `json:"log"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, pe.NewInputError("decode", err)
	}
	if probe.Log == nil {
		return nil, pe.NewInputError("decode", nil)
	}

	var c Capture
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, pe.NewInputError("decode", err)
	}
	if c.Log.Entries == nil {
		c.Log.Entries = []Entry{}
	}
	return &c, nil
}

// Normalize maps one entry into the canonical exchange record.
func Normalize(e Entry) Exchange {
	ex := Exchange{
		Method:          e.Request.Method,
		URL:             e.Request.URL,
		RequestHeaders:  e.Request.Headers,
		RequestCookies:  e.Request.Cookies,
		Status:          e.Response.Status,
		ResponseHeaders: e.Response.Headers,
	}

	if pd := e.Request.PostData; pd != nil {
		if pd.Text != nil {
			ex.RequestBody = *pd.Text
		}
		if pd.MimeType != nil {
			ex.RequestMime = *pd.MimeType
		}
	}

	if c := e.Response.Content; c != nil {
		if c.Text != nil {
			ex.ResponseBody = *c.Text
		}
		if c.MimeType != nil {
			ex.ResponseMime = *c.MimeType
		}
	}

	for _, h := range e.Response.Headers {
		if strings.ToLower(h.Name) == "content-type" {
			ex.ContentType = h.Value
			break
		}
	}

	return ex
}

// Exchanges normalizes all entries in capture order.
func (c *Capture) Exchanges() []Exchange {
	out := make([]Exchange, 0, len(c.Log.Entries))
	for _, e := range c.Log.Entries {
		out = append(out, Normalize(e))
	}
	return out
}
