package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

func TestEnsureIndex(t *testing.T) {
	ctx := context.Background()
	spec := domain.DefaultIndexSpec("tickets")

	t.Run("existing index is opened", func(t *testing.T) {
		prov := &mockProvisioner{exists: true}

		store, err := EnsureIndex(ctx, prov, spec, time.Hour)

		require.NoError(t, err)
		assert.Equal(t, "tickets", store.Name())
		assert.Empty(t, prov.created)
		assert.Equal(t, 1, prov.opens)
	})

	t.Run("missing index is created with fixed settings", func(t *testing.T) {
		prov := &mockProvisioner{}

		store, err := EnsureIndex(ctx, prov, spec, time.Millisecond)

		require.NoError(t, err)
		assert.NotNil(t, store)
		require.Len(t, prov.created, 1)
		assert.Equal(t, 1536, prov.created[0].Dimension)
		assert.Equal(t, "cosine", prov.created[0].Metric)
		assert.Equal(t, "aws", prov.created[0].Cloud)
		assert.Equal(t, "us-east-1", prov.created[0].Region)
		assert.Equal(t, 2, prov.opens)
	})

	t.Run("other open errors propagate", func(t *testing.T) {
		prov := &mockProvisioner{openErr: errors.New("unauthorized")}

		_, err := EnsureIndex(ctx, prov, spec, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
		assert.Empty(t, prov.created)
	})

	t.Run("create failure propagates", func(t *testing.T) {
		prov := &mockProvisioner{createErr: errors.New("quota exceeded")}

		_, err := EnsureIndex(ctx, prov, spec, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("cancelled while settling", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		prov := &mockProvisioner{}

		_, err := EnsureIndex(cancelled, prov, spec, time.Hour)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
