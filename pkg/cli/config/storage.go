package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/service/storage"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const defaultMemoryStorageURL = "memory://photos"

// Storage holds CLI flags for photo object storage
type Storage struct {
	backend       string
	bucket        string
	objectPrefix  string
	publicBaseURL string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Photo storage backend (gcs, memory, or empty to disable uploads)",
			Category:    "Storage",
			Sources:     cli.EnvVars("MEMORAID_STORAGE_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket for photos (required when using gcs backend)",
			Category:    "Storage",
			Sources:     cli.EnvVars("MEMORAID_GCS_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "gcs-object-prefix",
			Usage:       "Prefix of photo object names",
			Category:    "Storage",
			Sources:     cli.EnvVars("MEMORAID_GCS_OBJECT_PREFIX"),
			Destination: &x.objectPrefix,
		},
		&cli.StringFlag{
			Name:        "storage-public-base-url",
			Usage:       "Base URL photos are served from (e.g., a CDN in front of the bucket)",
			Category:    "Storage",
			Sources:     cli.EnvVars("MEMORAID_STORAGE_PUBLIC_BASE_URL"),
			Destination: &x.publicBaseURL,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("bucket", x.bucket),
		slog.String("object_prefix", x.objectPrefix),
		slog.String("public_base_url", x.publicBaseURL),
	)
}

// Configure creates the object storage. It returns nil storage when no
// backend is set. The returned function releases the storage client.
func (x *Storage) Configure(ctx context.Context) (interfaces.ObjectStorage, func(), error) {
	switch x.backend {
	case "":
		logging.Default().Info("Photo storage not configured, uploads are disabled")
		return nil, func() {}, nil

	case "gcs":
		if x.bucket == "" {
			return nil, nil, goerr.Wrap(ErrMissingRequired, "gcs-bucket is required when using gcs backend",
				goerr.V(FlagKey, "gcs-bucket"))
		}
		var opts []storage.GCSOption
		if x.objectPrefix != "" {
			opts = append(opts, storage.WithObjectPrefix(x.objectPrefix))
		}
		if x.publicBaseURL != "" {
			opts = append(opts, storage.WithPublicBaseURL(x.publicBaseURL))
		}
		gcs, err := storage.NewGCS(ctx, x.bucket, opts...)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize photo storage")
		}
		logging.Default().Info("Using Cloud Storage for photos", "bucket", x.bucket)
		return gcs, func() {
			if err := gcs.Close(); err != nil {
				logging.Default().Error("failed to close storage client", "error", err.Error())
			}
		}, nil

	case "memory":
		baseURL := x.publicBaseURL
		if baseURL == "" {
			baseURL = defaultMemoryStorageURL
		}
		logging.Default().Info("Using in-memory photo storage (development mode)")
		return storage.NewMemory(baseURL), func() {}, nil

	default:
		return nil, nil, goerr.Wrap(ErrUnknownBackend, "invalid storage backend", goerr.V(BackendKey, x.backend))
	}
}
