package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("reads a local file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>hi</p>"), 0644))

		got, err := fs.NewFetcher().Fetch(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", got)
	})

	t.Run("reads standard input for dash", func(t *testing.T) {
		t.Parallel()

		f := fs.NewFetcher(fs.WithStdin(strings.NewReader("<div>piped</div>")))

		got, err := f.Fetch(context.Background(), "-")

		require.NoError(t, err)
		assert.Equal(t, "<div>piped</div>", got)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewFetcher().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.html"))

		require.Error(t, err)
		assert.Equal(t, tagscan.ENOTFOUND, tagscan.ErrorCode(err))
	})

	t.Run("rejects input over the size limit", func(t *testing.T) {
		t.Parallel()

		f := fs.NewFetcher(fs.WithStdin(strings.NewReader("0123456789")), fs.WithMaxBytes(5))

		_, err := f.Fetch(context.Background(), "-")

		require.Error(t, err)
		assert.Equal(t, tagscan.EINVALID, tagscan.ErrorCode(err))
	})

	t.Run("honors a canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewFetcher().Fetch(ctx, "-")

		require.ErrorIs(t, err, context.Canceled)
	})
}
