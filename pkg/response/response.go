package response

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

// Content types set by the helpers in this package.
const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeJSON = "application/json; charset=utf-8"
)

// Response is a fully-resolved HTTP response.
//
// Body is either []byte, an io.Reader (closed after writing when it is an
// io.Closer), or nil for an empty body.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

// New creates a response with the given status and an empty header set.
func New(status int) *Response {
	return &Response{Status: status, Header: make(http.Header)}
}

// Text returns a 200 text/plain response.
func Text(body string) *Response {
	r := New(http.StatusOK)
	r.Header.Set("Content-Type", ContentTypeText)
	r.Body = []byte(body)
	return r
}

// HTML returns a 200 text/html response.
func HTML(body string) *Response {
	r := New(http.StatusOK)
	r.Header.Set("Content-Type", ContentTypeHTML)
	r.Body = []byte(body)
	return r
}

// JSON returns a 200 application/json response. Encoding failures are
// returned rather than written.
func JSON(v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	r := New(http.StatusOK)
	r.Header.Set("Content-Type", ContentTypeJSON)
	r.Body = data
	return r, nil
}

// Redirect returns a redirect to url. Codes outside 3xx fall back to 302.
func Redirect(url string, code int) *Response {
	if code < 300 || code > 399 {
		code = http.StatusFound
	}
	r := New(code)
	r.Header.Set("Location", url)
	return r
}

// NoContent returns an empty 204 response.
func NoContent() *Response {
	return New(http.StatusNoContent)
}

// Status returns a text/plain response whose body is the status text.
func Status(code int) *Response {
	r := Text(http.StatusText(code))
	r.Status = code
	return r
}

// WithStatus sets the status code and returns r.
func (r *Response) WithStatus(code int) *Response {
	r.Status = code
	return r
}

// WithHeader sets a header and returns r.
func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// MergeBase copies every header of base whose name is not already present
// on r. Headers set by the handler always win.
func (r *Response) MergeBase(base http.Header) {
	mergeAbsent(r.ensureHeader(), base)
}

func (r *Response) ensureHeader() http.Header {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	return r.Header
}

func mergeAbsent(dst, src http.Header) {
	for key, values := range src {
		if len(values) == 0 {
			continue
		}
		key = http.CanonicalHeaderKey(key)
		if _, ok := dst[key]; ok {
			continue
		}
		dst[key] = append([]string(nil), values...)
	}
}

// Clone returns a copy of r with its own header set. Byte bodies are
// shared; streaming bodies can only be written once.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	c := *r
	c.Header = r.Header.Clone()
	if c.Header == nil {
		c.Header = make(http.Header)
	}
	return &c
}

// BodyBytes returns the body for []byte bodies and nil otherwise.
func (r *Response) BodyBytes() []byte {
	if b, ok := r.Body.([]byte); ok {
		return b
	}
	return nil
}

// Close releases a streaming body without writing it.
func (r *Response) Close() error {
	if c, ok := r.Body.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteTo writes the response to w. HEAD requests get headers only.
func (r *Response) WriteTo(w http.ResponseWriter, req *http.Request) error {
	defer r.Close()

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	header := w.Header()
	for key, values := range r.Header {
		header[key] = values
	}

	var body io.Reader
	switch b := r.Body.(type) {
	case nil:
	case []byte:
		if header.Get("Content-Length") == "" && bodyAllowed(status) {
			header.Set("Content-Length", strconv.Itoa(len(b)))
		}
		body = bytes.NewReader(b)
	case io.Reader:
		body = b
	}

	w.WriteHeader(status)

	if body == nil || !bodyAllowed(status) || (req != nil && req.Method == http.MethodHead) {
		return nil
	}
	_, err := io.Copy(w, body)
	return err
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
