package config_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/cli/config"
)

func TestStorage_Configure(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		objects, closer, err := config.NewStorageForTest("", "", "").Configure(t.Context())
		gt.NoError(t, err).Required()
		defer closer()
		gt.Value(t, objects).Nil()
	})

	t.Run("memory", func(t *testing.T) {
		objects, closer, err := config.NewStorageForTest("memory", "", "https://cdn.example.com").Configure(t.Context())
		gt.NoError(t, err).Required()
		defer closer()

		url, err := objects.Put(t.Context(), "photos/p/a.jpg", "image/jpeg", bytes.NewReader([]byte("x")))
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.HasPrefix(url, "https://cdn.example.com/")).True()
	})

	t.Run("gcs without bucket", func(t *testing.T) {
		_, _, err := config.NewStorageForTest("gcs", "", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrMissingRequired)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := config.NewStorageForTest("s3", "", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrUnknownBackend)
	})
}

func TestRepository_Configure(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest("memory", "").Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore without project", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrMissingRequired)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("sqlite", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrUnknownBackend)
	})
}
