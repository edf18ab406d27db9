package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/receiptvault/internal/database"
	apperrors "github.com/allisson/receiptvault/internal/errors"
	objectsDomain "github.com/allisson/receiptvault/internal/objects/domain"
	appvalidation "github.com/allisson/receiptvault/internal/validation"
)

// gatewayUseCase implements the Gateway interface for object storage.
type gatewayUseCase struct {
	backend      BlobBackend
	metadataRepo MetadataRepository
	policyRepo   PolicyRepository
	txManager    database.TxManager
	privateRoot  string
}

// Upload stores the object under <privateRoot>/<accountScope>/receipts/<id>
// and records metadata and policy for the new path.
func (g *gatewayUseCase) Upload(ctx context.Context, input UploadInput) (string, error) {
	if len(input.Content) == 0 {
		return "", objectsDomain.ErrEmptyContent
	}
	if err := appvalidation.AccountScope.Validate(input.AccountScope); err != nil {
		return "", apperrors.Wrap(objectsDomain.ErrInvalidAccountScope, err.Error())
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = objectsDomain.DefaultContentType
	}

	id := uuid.Must(uuid.NewV7()).String()
	path := objectsDomain.BuildPath(g.privateRoot, input.AccountScope, id)

	if err := g.backend.Upload(ctx, path, contentType, input.Content); err != nil {
		return "", err
	}

	policy := g.resolvePolicy(input)
	metadata := &objectsDomain.ObjectMetadata{
		Path:        path,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}

	err := g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := g.metadataRepo.Save(txCtx, metadata); err != nil {
			return err
		}
		return g.policyRepo.Save(txCtx, path, policy)
	})
	if err != nil {
		// The blob is written but unindexed; the reconciliation sweep
		// reports it until the state is repaired.
		return "", apperrors.Wrap(err, "failed to record object state")
	}

	return path, nil
}

// resolvePolicy returns the explicit policy when provided, otherwise the
// default policy for the requested visibility.
func (g *gatewayUseCase) resolvePolicy(input UploadInput) objectsDomain.AccessPolicy {
	if input.Policy != nil {
		return *input.Policy
	}
	if input.Visibility == objectsDomain.VisibilityPublic {
		return objectsDomain.NewPublicPolicy(input.OwnerID)
	}
	return objectsDomain.NewPrivatePolicy(input.OwnerID)
}

// Download checks existence, enforces the access policy, and returns the
// object with delivery headers. Lost metadata degrades to the default
// content type instead of failing the download.
func (g *gatewayUseCase) Download(
	ctx context.Context,
	path, requesterID string,
) (*DownloadOutput, error) {
	exists, err := g.backend.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, objectsDomain.ErrObjectNotFound
	}

	cacheControl := objectsDomain.CacheControlPublic
	if objectsDomain.IsPrivatePath(g.privateRoot, path) {
		policy, err := g.policyRepo.Get(ctx, path)
		if err != nil {
			if errors.Is(err, objectsDomain.ErrPolicyNotFound) {
				// A private object without a policy is unreadable.
				return nil, objectsDomain.ErrAccessDenied
			}
			return nil, err
		}
		if !policy.Allows(requesterID, objectsDomain.PermissionRead) {
			return nil, objectsDomain.ErrAccessDenied
		}
		if policy.Visibility == objectsDomain.VisibilityPrivate {
			cacheControl = objectsDomain.CacheControlPrivate
		}
	}

	content, err := g.backend.Download(ctx, path)
	if err != nil {
		return nil, err
	}

	contentType := objectsDomain.DefaultContentType
	metadata, err := g.metadataRepo.Get(ctx, path)
	switch {
	case err == nil:
		contentType = metadata.ContentType
	case errors.Is(err, objectsDomain.ErrMetadataNotFound):
		// Degrade to the default content type.
	default:
		return nil, err
	}

	return &DownloadOutput{
		Content:      content,
		ContentType:  contentType,
		CacheControl: cacheControl,
	}, nil
}

// Delete removes the blob first, then metadata and policy together. When the
// tail steps fail the blob is already gone and the reconciliation sweep
// removes the leftover records.
func (g *gatewayUseCase) Delete(ctx context.Context, path string) error {
	if err := g.backend.Delete(ctx, path); err != nil {
		return err
	}

	err := g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := g.metadataRepo.Delete(txCtx, path); err != nil {
			return err
		}
		return g.policyRepo.Delete(txCtx, path)
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to remove object state")
	}

	return nil
}

// NormalizePath maps an internal storage path to its external form.
func (g *gatewayUseCase) NormalizePath(path string) string {
	return objectsDomain.NormalizePath(g.privateRoot, path)
}

// NewGatewayUseCase creates a new object storage gateway instance.
func NewGatewayUseCase(
	backend BlobBackend,
	metadataRepo MetadataRepository,
	policyRepo PolicyRepository,
	txManager database.TxManager,
	privateRoot string,
) Gateway {
	return &gatewayUseCase{
		backend:      backend,
		metadataRepo: metadataRepo,
		policyRepo:   policyRepo,
		txManager:    txManager,
		privateRoot:  privateRoot,
	}
}
