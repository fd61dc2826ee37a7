package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
)

const defaultGCSBaseURL = "https://storage.googleapis.com"

// objectWriter is the part of *storage.Writer Put relies on. Cancelling the
// context the writer was created with aborts the upload.
type objectWriter interface {
	io.Writer
	Close() error
}

// GCS stores objects in a Google Cloud Storage bucket
type GCS struct {
	client    *storage.Client
	bucket    string
	prefix    string
	baseURL   string
	newWriter func(ctx context.Context, object, contentType string) objectWriter
}

var _ interfaces.ObjectStorage = &GCS{}

// GCSOption is a functional option for GCS configuration
type GCSOption func(*GCS)

// WithObjectPrefix prepends prefix to every object name
func WithObjectPrefix(prefix string) GCSOption {
	return func(g *GCS) {
		g.prefix = strings.Trim(prefix, "/")
	}
}

// WithPublicBaseURL overrides the URL objects are served from, such as a CDN
// in front of the bucket
func WithPublicBaseURL(baseURL string) GCSOption {
	return func(g *GCS) {
		g.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewGCS creates a GCS object storage for the bucket
func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	g := &GCS{
		client:  client,
		bucket:  bucket,
		baseURL: defaultGCSBaseURL + "/" + bucket,
	}
	g.newWriter = g.bucketWriter
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GCS) objectName(name string) string {
	if g.prefix == "" {
		return name
	}
	return g.prefix + "/" + name
}

func (g *GCS) bucketWriter(ctx context.Context, object, contentType string) objectWriter {
	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

// Put uploads r as the named object and returns its public URL. A failed
// read aborts the upload so no truncated object is left behind.
func (g *GCS) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	object := g.objectName(name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.newWriter(ctx, object, contentType)
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return "", goerr.Wrap(err, "failed to upload object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", object))
	}

	return publicURL(g.baseURL, object), nil
}

// Close releases the storage client
func (g *GCS) Close() error {
	return g.client.Close()
}

func publicURL(baseURL, object string) string {
	segments := strings.Split(object, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s", baseURL, strings.Join(segments, "/"))
}
