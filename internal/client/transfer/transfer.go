// Package transfer moves exported directory documents to and from the
// outside world: local files, S3-compatible object storage and presigned
// HTTP(S) object URLs.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/arnorgym/internal/common"
	"github.com/spf13/afero"
)

// ErrNotJSON is returned when importing from a location without a .json suffix.
var ErrNotJSON = errors.New("import source must be a .json document")

// Target is a place an exported document can be written to or read from.
type Target interface {
	// Location describes the target for user-facing messages.
	Location() string
	Write(ctx context.Context, doc []byte) error
	Read(ctx context.Context) ([]byte, error)
}

// Options configure Open.
type Options struct {
	// FS is used for local files; the OS filesystem when nil.
	FS   afero.Fs
	S3   S3Options
	HTTP HTTPOptions
}

// Open resolves uri to a Target. "s3://bucket/key" selects object storage,
// "http://" and "https://" a presigned object URL, anything else is a local
// path. An empty uri means the default export file in the working directory.
func Open(ctx context.Context, uri string, opts Options) (Target, error) {
	if uri == "" {
		uri = common.ExportFileName
	}

	if strings.HasPrefix(uri, "s3://") {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", uri, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("s3 location must look like s3://bucket/key, got %q", uri)
		}
		api, err := newS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Target(api, u.Host, key), nil
	}

	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", uri, err)
		}
		return NewHTTPTarget(newHTTPClient(opts.HTTP), u), nil
	}

	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return NewFileTarget(fs, uri), nil
}

func isJSONName(name string) bool {
	return strings.EqualFold(path.Ext(name), ".json")
}
