package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunReconcile(t *testing.T) {
	t.Run("memory-backend-sweep", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("SECRET_KEY", strings.Repeat("ab", 32))
		t.Setenv("OBJECT_STORE_DRIVER", "memory")
		t.Setenv("BLOB_BUCKET_URL", "mem://")
		t.Setenv("METRICS_ENABLED", "false")

		err := RunReconcile(context.Background())
		require.NoError(t, err)
	})

	t.Run("invalid-configuration", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("OBJECT_STORE_DRIVER", "cassandra")

		err := RunReconcile(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid configuration")
	})
}
