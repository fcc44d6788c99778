package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// EnsureIndex opens the index named by spec, creating it first if it does not exist.
// After creation it waits settle before opening the new index.
// Errors other than not-found are returned unchanged.
func EnsureIndex(
	ctx context.Context,
	provisioner driven.IndexProvisioner,
	spec domain.IndexSpec,
	settle time.Duration,
) (driven.VectorStore, error) {
	store, err := provisioner.OpenIndex(ctx, spec.Name)
	if err == nil {
		logger.Info("Found existing index: %s", spec.Name)
		return store, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("open index %s: %w", spec.Name, err)
	}

	logger.Info("Index %s not found, creating (dimension %d, metric %s, %s/%s)",
		spec.Name, spec.Dimension, spec.Metric, spec.Cloud, spec.Region)

	if err := provisioner.CreateIndex(ctx, spec); err != nil {
		return nil, fmt.Errorf("create index %s: %w", spec.Name, err)
	}

	if settle > 0 {
		timer := time.NewTimer(settle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	store, err = provisioner.OpenIndex(ctx, spec.Name)
	if err != nil {
		return nil, fmt.Errorf("open created index %s: %w", spec.Name, err)
	}
	return store, nil
}
