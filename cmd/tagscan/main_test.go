package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/tagscan"
	main "github.com/fwojciec/tagscan/cmd/tagscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "tagscan.db")
	m.Stdin = strings.NewReader("")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints help with no arguments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "extract")
		assert.Contains(t, stdout.String(), "compare")
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "tagscan")
	})

	t.Run("extracts from a local file end to end", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<div>Start content</div></div>"), 0644))

		m := newTestMain(t)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"extract", path, "-t", "div"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "[0] Tag: div, Content: Start content")
		assert.Contains(t, stderr.String(), "Error: Unexpected closing tag </div> at position 24")
		assert.Nil(t, m.DB, "extract without --save must not open the database")
	})

	t.Run("reads standard input", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		m.Stdin = strings.NewReader("<p>piped</p>")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "-", "--tag", "p", "--store"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Content: piped")
	})

	t.Run("saves, lists, shows and deletes a run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>one</p><p>two"), 0644))
		dbPath := filepath.Join(dir, "runs.db")

		run := func(args ...string) (string, string, error) {
			m := newTestMain(t)
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			err := m.Run(context.Background(), append([]string{"--db", dbPath}, args...), stdout, stderr)
			return stdout.String(), stderr.String(), err
		}

		_, stderr, err := run("extract", path, "-t", "p", "--store", "--save")
		require.NoError(t, err)
		require.Contains(t, stderr, "Saved run ")
		id := strings.TrimSpace(strings.TrimPrefix(stderr[strings.Index(stderr, "Saved run "):], "Saved run "))

		stdout, _, err := run("runs")
		require.NoError(t, err)
		assert.Contains(t, stdout, id)
		assert.Contains(t, stdout, "2 records  1 malformed")

		stdout, _, err = run("show", id)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Content: one")
		assert.Contains(t, stdout, "Error: MALFORMED - Missing closing tag for tag 'p'")

		stdout, _, err = run("delete", id, "--force")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Deleted run "+id)

		stdout, _, err = run("runs")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No runs found")
	})

	t.Run("writes a report with --out", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>one</p>"), 0644))
		out := filepath.Join(dir, "reports")

		err := newTestMain(t).Run(context.Background(),
			[]string{"extract", path, "-t", "p", "--out", out}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(out, "page.scan.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "## 1. p (complete)")
	})

	t.Run("compares approaches on a local file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<div><p>a</p></div>"), 0644))

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(),
			[]string{"compare", path, "-t", "div,p", "-n", "1"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "scan")
		assert.Contains(t, stdout.String(), "dom")
		assert.Contains(t, stdout.String(), "xml")
	})

	t.Run("logs with --verbose", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>a</p></p>"), 0644))

		stderr := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(),
			[]string{"--verbose", "extract", path, "-t", "p"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch")
		assert.Contains(t, stderr.String(), "kind=unexpected_closing_tag")
	})

	t.Run("extracts from a web page", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/page" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte("<li>first<li>second</li>"))
		}))
		defer srv.Close()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(),
			[]string{"extract", srv.URL + "/page", "-t", "li", "--store"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Content: second")

		err = newTestMain(t).Run(context.Background(),
			[]string{"extract", srv.URL + "/missing", "-t", "li"}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.Equal(t, tagscan.ENOTFOUND, tagscan.ErrorCode(err))
	})

	t.Run("rejects an unknown approach", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(),
			[]string{"extract", "a.html", "-t", "p", "-a", "regex"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}
