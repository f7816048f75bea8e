// Package capture defines the browser network capture schema and its decoding.
//
// The schema follows the HAR shape produced by browser devtools and the
// capture collaborator: a log with an ordered list of request/response
// entries.
package capture

// Header is one request or response header pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cookie is one request cookie.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   *string `json:"domain,omitempty"`
	Path     *string `json:"path,omitempty"`
	Expires  *string `json:"expires,omitempty"`
	HTTPOnly *bool   `json:"httpOnly,omitempty"`
	Secure   *bool   `json:"secure,omitempty"`
}

// PostData is a request body with its mime type.
type PostData struct {
	MimeType *string `json:"mimeType,omitempty"`
	Text     *string `json:"text,omitempty"`
}

// Request is the request half of a captured exchange.
type Request struct {
	Method   string    `json:"method"`
	URL      string    `json:"url"`
	Headers  []Header  `json:"headers"`
	Cookies  []Cookie  `json:"cookies,omitempty"`
	PostData *PostData `json:"postData,omitempty"`
}

// Content is a response body with size and mime type.
type Content struct {
	Size     *int64  `json:"size,omitempty"`
	MimeType *string `json:"mimeType,omitempty"`
	Text     *string `json:"text,omitempty"`
}

// Response is the response half of a captured exchange.
type Response struct {
	Status  int      `json:"status"`
	Headers []Header `json:"headers"`
	Content *Content `json:"content,omitempty"`
}

// Entry is one captured request/response pair.
type Entry struct {
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
	StartedDateTime *string  `json:"startedDateTime,omitempty"`
	Time            *float64 `json:"time,omitempty"`
}

// Log holds the ordered entry list.
type Log struct {
	Entries []Entry `json:"entries"`
}

// Capture is a complete capture document.
type Capture struct {
	Log Log `json:"log"`
}

// Exchange is the canonical in-memory record of one request/response pair.
// It flattens the capture schema into the fields the pipeline inspects.
type Exchange struct {
	Method          string
	URL             string
	RequestHeaders  []Header
	RequestCookies  []Cookie
	RequestBody     string
	RequestMime     string
	Status          int
	ResponseHeaders []Header
	ResponseBody    string
	ResponseMime    string
	ContentType     string // response Content-Type header, "" if absent
}
