// Package loader resolves record.Source values into record.Documents.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// DefaultMaxBytes caps remote payloads. Descriptions are source files and
// schemas, never bulk data.
const DefaultMaxBytes int64 = 8 << 20

// Loader implements record.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

var _ record.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options record.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      client,
		allowHTTP: client != nil,
		timeout:   timeout,
		maxBytes:  DefaultMaxBytes,
	}
}

// Load fetches the payload behind src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src record.Source) (record.Document, error) {
	if src == nil {
		return record.Document{}, errors.New("loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case record.SourceKindFile:
		data, err = readFile(ctx, src.Location())
	case record.SourceKindFS:
		data, err = readFS(ctx, l.fs, src.Location())
	case record.SourceKindURL:
		if !l.allowHTTP {
			return record.Document{}, fmt.Errorf("loader: %s: http support disabled", src.Location())
		}
		data, err = fetch(ctx, l.http, src.Location(), l.timeout, l.maxBytes)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return record.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}

	return record.NewDocument(src, data)
}
