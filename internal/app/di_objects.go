package app

import (
	"context"
	"fmt"

	objectsRepository "github.com/allisson/receiptvault/internal/objects/repository"
	objectsService "github.com/allisson/receiptvault/internal/objects/service"
	objectsUsecase "github.com/allisson/receiptvault/internal/objects/usecase"
)

// BlobStore returns the blob storage backend.
func (c *Container) BlobStore(ctx context.Context) (*objectsService.BlobStore, error) {
	c.blobStoreInit.Do(func() {
		blobStore, err := objectsService.NewBlobStore(ctx, c.config.BlobBucketURL, c.config.BlobOperationTimeout)
		if err != nil {
			c.initErrors["blobStore"] = err
			return
		}
		c.blobStore = blobStore
	})
	if storedErr, exists := c.initErrors["blobStore"]; exists {
		return nil, storedErr
	}
	return c.blobStore, nil
}

// MetadataRepository returns the object metadata repository for the
// configured object store driver.
func (c *Container) MetadataRepository() (objectsUsecase.MetadataRepository, error) {
	c.metadataRepoInit.Do(func() {
		metadataRepo, err := c.initMetadataRepository()
		if err != nil {
			c.initErrors["metadataRepo"] = err
			return
		}
		c.metadataRepo = metadataRepo
	})
	if storedErr, exists := c.initErrors["metadataRepo"]; exists {
		return nil, storedErr
	}
	return c.metadataRepo, nil
}

// PolicyRepository returns the access policy repository for the configured
// object store driver.
func (c *Container) PolicyRepository() (objectsUsecase.PolicyRepository, error) {
	c.policyRepoInit.Do(func() {
		policyRepo, err := c.initPolicyRepository()
		if err != nil {
			c.initErrors["policyRepo"] = err
			return
		}
		c.policyRepo = policyRepo
	})
	if storedErr, exists := c.initErrors["policyRepo"]; exists {
		return nil, storedErr
	}
	return c.policyRepo, nil
}

// Gateway returns the object storage gateway wrapped with metrics instrumentation.
func (c *Container) Gateway(ctx context.Context) (objectsUsecase.Gateway, error) {
	c.gatewayInit.Do(func() {
		gateway, err := c.initGateway(ctx)
		if err != nil {
			c.initErrors["gateway"] = err
			return
		}
		c.gateway = gateway
	})
	if storedErr, exists := c.initErrors["gateway"]; exists {
		return nil, storedErr
	}
	return c.gateway, nil
}

// Reconciler returns the orphaned-state reconciler.
func (c *Container) Reconciler(ctx context.Context) (objectsUsecase.Reconciler, error) {
	c.reconcilerInit.Do(func() {
		reconciler, err := c.initReconciler(ctx)
		if err != nil {
			c.initErrors["reconciler"] = err
			return
		}
		c.reconciler = reconciler
	})
	if storedErr, exists := c.initErrors["reconciler"]; exists {
		return nil, storedErr
	}
	return c.reconciler, nil
}

// initMetadataRepository creates the metadata repository matching the driver.
func (c *Container) initMetadataRepository() (objectsUsecase.MetadataRepository, error) {
	switch c.config.ObjectStoreDriver {
	case "memory":
		return objectsRepository.NewMemoryMetadataRepository(), nil
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for metadata repository: %w", err)
		}
		return objectsRepository.NewPostgreSQLMetadataRepository(db), nil
	case "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for metadata repository: %w", err)
		}
		return objectsRepository.NewMySQLMetadataRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported object store driver: %s", c.config.ObjectStoreDriver)
	}
}

// initPolicyRepository creates the policy repository matching the driver.
func (c *Container) initPolicyRepository() (objectsUsecase.PolicyRepository, error) {
	switch c.config.ObjectStoreDriver {
	case "memory":
		return objectsRepository.NewMemoryPolicyRepository(), nil
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for policy repository: %w", err)
		}
		return objectsRepository.NewPostgreSQLPolicyRepository(db), nil
	case "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for policy repository: %w", err)
		}
		return objectsRepository.NewMySQLPolicyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported object store driver: %s", c.config.ObjectStoreDriver)
	}
}

// initGateway creates the object storage gateway with all its dependencies.
func (c *Container) initGateway(ctx context.Context) (objectsUsecase.Gateway, error) {
	blobStore, err := c.BlobStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob store for gateway: %w", err)
	}

	metadataRepo, err := c.MetadataRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata repository for gateway: %w", err)
	}

	policyRepo, err := c.PolicyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy repository for gateway: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for gateway: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for gateway: %w", err)
	}

	gateway := objectsUsecase.NewGatewayUseCase(
		blobStore,
		metadataRepo,
		policyRepo,
		txManager,
		c.config.BlobPrivateRoot,
	)

	return objectsUsecase.NewGatewayWithMetrics(gateway, businessMetrics), nil
}

// initReconciler creates the reconciler with all its dependencies.
func (c *Container) initReconciler(ctx context.Context) (objectsUsecase.Reconciler, error) {
	blobStore, err := c.BlobStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob store for reconciler: %w", err)
	}

	metadataRepo, err := c.MetadataRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata repository for reconciler: %w", err)
	}

	policyRepo, err := c.PolicyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy repository for reconciler: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for reconciler: %w", err)
	}

	return objectsUsecase.NewReconciler(
		blobStore,
		metadataRepo,
		policyRepo,
		txManager,
		c.config.BlobPrivateRoot,
		c.config.ReconcileRatePerSec,
		c.config.ReconcileConcurrency,
		c.Logger(),
	), nil
}
