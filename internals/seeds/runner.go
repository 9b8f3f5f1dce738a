package seeds

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jurnalku_backend/internals/seeds/templates"
)

// DefaultTemplateFiles: rubrik bawaan untuk database baru.
var DefaultTemplateFiles = []string{
	"internals/seeds/templates/data_akreditasi.yaml",
}

// RunTemplateSeeds menjalankan seeder rubrik berurutan, berhenti di error pertama.
func RunTemplateSeeds(ctx context.Context, store templates.HierarchyStore, log *zap.Logger, actor uuid.UUID, files ...string) error {
	if len(files) == 0 {
		files = DefaultTemplateFiles
	}
	for _, f := range files {
		if _, err := templates.SeedTemplateFromYAML(ctx, store, log, f, actor); err != nil {
			return err
		}
	}
	return nil
}
