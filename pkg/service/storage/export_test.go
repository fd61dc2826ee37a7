package storage

import "context"

type ObjectWriter = objectWriter

// NewGCSWithWriterForTest creates a GCS whose uploads go to newWriter
func NewGCSWithWriterForTest(bucket string, newWriter func(ctx context.Context, object, contentType string) ObjectWriter) *GCS {
	return &GCS{
		bucket:    bucket,
		baseURL:   defaultGCSBaseURL + "/" + bucket,
		newWriter: newWriter,
	}
}
