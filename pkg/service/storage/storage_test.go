package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/service/storage"
)

func TestMemory_Put(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory("http://localhost:8080/photos/")

	url, err := s.Put(ctx, "patient-001/photo one.jpg", "image/jpeg", strings.NewReader("binary"))
	gt.NoError(t, err).Required()
	gt.Value(t, url).Equal("http://localhost:8080/photos/patient-001/photo%20one.jpg")

	obj, ok := s.Get("patient-001/photo one.jpg")
	gt.Bool(t, ok).True()
	gt.Value(t, obj.ContentType).Equal("image/jpeg")
	gt.Value(t, string(obj.Data)).Equal("binary")
}

func TestGCS_Put(t *testing.T) {
	bucket := os.Getenv("TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET not set")
	}

	ctx := context.Background()
	s, err := storage.NewGCS(ctx, bucket, storage.WithObjectPrefix("test"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, s.Close())
	})

	url, err := s.Put(ctx, "photo.txt", "text/plain", strings.NewReader("hello"))
	gt.NoError(t, err).Required()
	gt.String(t, url).Contains(bucket + "/test/photo.txt")
}

func TestNewGCS_RequiresBucket(t *testing.T) {
	_, err := storage.NewGCS(context.Background(), "")
	gt.Value(t, err).NotNil()
}

type fakeObjectWriter struct {
	ctx         context.Context
	contentType string
	buf         bytes.Buffer
	closed      bool
}

func (w *fakeObjectWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *fakeObjectWriter) Close() error {
	w.closed = true
	return nil
}

func newFakeGCS(writers map[string]*fakeObjectWriter) *storage.GCS {
	return storage.NewGCSWithWriterForTest("photos", func(ctx context.Context, object, contentType string) storage.ObjectWriter {
		w := &fakeObjectWriter{ctx: ctx, contentType: contentType}
		writers[object] = w
		return w
	})
}

func TestGCS_PutWriter(t *testing.T) {
	ctx := context.Background()

	t.Run("finalizes the object", func(t *testing.T) {
		writers := map[string]*fakeObjectWriter{}
		s := newFakeGCS(writers)

		url, err := s.Put(ctx, "patient-001/beach.jpg", "image/jpeg", strings.NewReader("binary"))
		gt.NoError(t, err).Required()
		gt.Value(t, url).Equal("https://storage.googleapis.com/photos/patient-001/beach.jpg")

		w := writers["patient-001/beach.jpg"]
		gt.Value(t, w).NotNil().Required()
		gt.Bool(t, w.closed).True()
		gt.Value(t, w.contentType).Equal("image/jpeg")
		gt.Value(t, w.buf.String()).Equal("binary")
	})

	t.Run("read failure aborts instead of finalizing", func(t *testing.T) {
		writers := map[string]*fakeObjectWriter{}
		s := newFakeGCS(writers)

		r := io.MultiReader(strings.NewReader("partial"), &failingReader{err: errors.New("connection reset")})
		_, err := s.Put(ctx, "patient-001/beach.jpg", "image/jpeg", r)
		gt.Value(t, err).NotNil()

		w := writers["patient-001/beach.jpg"]
		gt.Value(t, w).NotNil().Required()
		gt.Bool(t, w.closed).False()
		gt.Value(t, w.ctx.Err()).Equal(context.Canceled)
	})
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}
