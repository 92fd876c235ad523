// Package loader implements scad.Loader with file, fs.FS, and HTTP
// strategies. Construction helpers live in the top-level customizer package.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-customizer/pkg/scad"
)

// Loader delegates to file, fs.FS, or HTTP strategies depending on the source
// kind. Remote fetching stays disabled unless explicitly configured.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ scad.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options scad.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a model source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src scad.Source) (scad.Document, error) {
	if src == nil {
		return scad.Document{}, errors.New("scad loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case scad.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case scad.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case scad.SourceKindURL:
		if !l.allowHTTP {
			return scad.Document{}, errors.New("scad loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("scad loader: unsupported source kind")
	}
	if err != nil {
		return scad.Document{}, err
	}

	return scad.NewDocument(src, data)
}
