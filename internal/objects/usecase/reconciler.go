package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
)

// reconciler sweeps state orphaned by partial deletes: metadata and policies
// whose blob is gone are removed, blobs with no metadata are reported.
// Backend existence checks are rate limited so the sweep never saturates the
// storage backend.
type reconciler struct {
	backend      BlobBackend
	metadataRepo MetadataRepository
	policyRepo   PolicyRepository
	txManager    database.TxManager
	limiter      *rate.Limiter
	concurrency  int
	privateRoot  string
	logger       *slog.Logger
}

// Sweep runs one full reconciliation pass.
func (r *reconciler) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	var mu sync.Mutex

	metadataPaths, err := r.metadataRepo.ListPaths(ctx)
	if err != nil {
		return report, apperrors.Wrap(err, "failed to list metadata paths")
	}
	report.ScannedPaths = len(metadataPaths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, path := range metadataPaths {
		g.Go(func() error {
			if err := r.limiter.Wait(gctx); err != nil {
				return err
			}

			exists, err := r.backend.Exists(gctx, path)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}

			err = r.txManager.WithTx(gctx, func(txCtx context.Context) error {
				if err := r.metadataRepo.Delete(txCtx, path); err != nil {
					return err
				}
				return r.policyRepo.Delete(txCtx, path)
			})
			if err != nil {
				return apperrors.Wrap(err, "failed to remove orphaned object state")
			}

			mu.Lock()
			report.OrphanedMetadata++
			mu.Unlock()
			r.logger.Info("removed orphaned object state", "path", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	if err := r.sweepPolicies(ctx, &report); err != nil {
		return report, err
	}
	if err := r.reportUnindexedBlobs(ctx, &report); err != nil {
		return report, err
	}

	return report, nil
}

// sweepPolicies removes policies whose path has neither metadata nor a blob.
func (r *reconciler) sweepPolicies(ctx context.Context, report *SweepReport) error {
	policyPaths, err := r.policyRepo.ListPaths(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to list policy paths")
	}

	for _, path := range policyPaths {
		_, err := r.metadataRepo.Get(ctx, path)
		if err == nil {
			continue
		}
		if !errors.Is(err, objectsDomain.ErrMetadataNotFound) {
			return err
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		exists, err := r.backend.Exists(ctx, path)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := r.policyRepo.Delete(ctx, path); err != nil {
			return apperrors.Wrap(err, "failed to remove orphaned policy")
		}
		report.OrphanedPolicies++
		r.logger.Info("removed orphaned access policy", "path", path)
	}
	return nil
}

// reportUnindexedBlobs counts blobs stored under the private root with no
// metadata record. Blobs are never deleted by the sweep.
func (r *reconciler) reportUnindexedBlobs(ctx context.Context, report *SweepReport) error {
	blobPaths, err := r.backend.List(ctx, r.privateRoot+"/")
	if err != nil {
		return err
	}

	for _, path := range blobPaths {
		_, err := r.metadataRepo.Get(ctx, path)
		if err == nil {
			continue
		}
		if !errors.Is(err, objectsDomain.ErrMetadataNotFound) {
			return err
		}
		report.UnindexedBlobs++
		r.logger.Warn("blob has no metadata record", "path", path)
	}
	return nil
}

// NewReconciler creates a reconciler. requestsPerSecond bounds backend
// existence checks; concurrency bounds the number of in-flight checks.
func NewReconciler(
	backend BlobBackend,
	metadataRepo MetadataRepository,
	policyRepo PolicyRepository,
	txManager database.TxManager,
	privateRoot string,
	requestsPerSecond float64,
	concurrency int,
	logger *slog.Logger,
) Reconciler {
	return &reconciler{
		backend:      backend,
		metadataRepo: metadataRepo,
		policyRepo:   policyRepo,
		txManager:    txManager,
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		concurrency:  concurrency,
		privateRoot:  privateRoot,
		logger:       logger,
	}
}
