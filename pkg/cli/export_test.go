package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/fireconf"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/usecase"
)

// GetIndexConfigForTest exposes the Firestore index configuration
func GetIndexConfigForTest(prefix string) *fireconf.Config {
	return getIndexConfig(prefix)
}

// RegenerateAllForTest runs generation and prints the summary
func RegenerateAllForTest(ctx context.Context, w io.Writer, uc *usecase.UseCases, targets []model.MemoryID, concurrency int) error {
	return printGenerateResults(w, regenerateAll(ctx, uc, targets, concurrency))
}

// ValidateResponseFileForTest exposes the response file check
func ValidateResponseFileForTest(w io.Writer, path string) bool {
	return validateResponseFile(w, path)
}

// MigrationStepsForTest exposes the dry run step descriptions
func MigrationStepsForTest(diff *fireconf.DiffResult) []string {
	return migrationSteps(diff)
}
