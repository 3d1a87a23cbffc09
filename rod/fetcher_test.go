package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_WithoutBrowser(t *testing.T) {
	t.Parallel()

	t.Run("does not launch a browser until first fetch", func(t *testing.T) {
		t.Parallel()

		fetcher := rod.NewFetcher()
		defer fetcher.Close()

		assert.Zero(t, fetcher.LauncherPID())
	})

	t.Run("rejects fetches after close", func(t *testing.T) {
		t.Parallel()

		fetcher := rod.NewFetcher()
		require.NoError(t, fetcher.Close())

		_, err := fetcher.Fetch(context.Background(), "http://example.com")

		require.Error(t, err)
		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
		assert.Contains(t, distill.ErrorMessage(err), "closed")
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		fetcher := rod.NewFetcher()

		require.NoError(t, fetcher.Close())
		require.NoError(t, fetcher.Close())
	})

	t.Run("reports a canceled context before launching", func(t *testing.T) {
		t.Parallel()

		fetcher := rod.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.FetchRendered(ctx, "http://example.com", distill.Dynamic{Headless: true})

		require.Error(t, err)
		assert.Equal(t, distill.ECANCELED, distill.ErrorCode(err))
		assert.Zero(t, fetcher.LauncherPID())
	})

	t.Run("does not launch a browser once closed", func(t *testing.T) {
		t.Parallel()

		fetcher := rod.NewFetcher()
		require.NoError(t, fetcher.Close())

		m, err := fetcher.Manager(true)

		require.Error(t, err)
		assert.Nil(t, m)
		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
		assert.Zero(t, fetcher.LauncherPID())
	})
}
