package static

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/hatch/pkg/response"
)

// Config configures a static Handler.
type Config struct {
	// Dir is the directory containing static files.
	Dir string

	// Prefix is the URL path prefix (default "/").
	Prefix string

	// Index is served for directory-like paths (default "index.html").
	Index string

	// MaxAge, when positive, emits "Cache-Control: public, max-age=<MaxAge>".
	MaxAge int
}

// Handler serves files for one static configuration.
type Handler struct {
	resolver *Resolver
	maxAge   int
}

// NewHandler creates a Handler. The directory must exist.
func NewHandler(cfg Config) (*Handler, error) {
	resolver, err := NewResolver(cfg.Dir, cfg.Prefix, cfg.Index)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolver.Root())
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "static", Path: resolver.Root(), Err: os.ErrInvalid}
	}
	return &Handler{resolver: resolver, maxAge: cfg.MaxAge}, nil
}

// Resolver returns the handler's path resolver.
func (h *Handler) Resolver() *Resolver { return h.resolver }

// Serve returns the file response for r. Non GET/HEAD requests and misses
// return ErrNotHandled or ErrNotFound so the caller can try the next stage.
func (h *Handler) Serve(r *http.Request) (*response.Response, error) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return nil, ErrNotHandled
	}

	path, err := h.resolver.Resolve(r.URL.EscapedPath())
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrNotFound
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, ErrNotFound
	}

	contentType, err := detectContentType(f, path)
	if err != nil {
		f.Close()
		return nil, ErrNotFound
	}

	resp := response.New(http.StatusOK)
	resp.Header.Set("Content-Type", contentType)
	resp.Header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	resp.Header.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	if h.maxAge > 0 {
		resp.Header.Set("Cache-Control", "public, max-age="+strconv.Itoa(h.maxAge))
	}
	resp.Body = f

	return resp, nil
}

// detectContentType infers the type from the extension, sniffing the
// first 512 bytes when the extension is unknown.
func detectContentType(f *os.File, path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	var buf [512]byte
	n, err := io.ReadFull(f, buf[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
