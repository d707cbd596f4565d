// internal/engine/dynamic/fetcher_test.go
package dynamic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/law-makers/pricewatch/internal/engine"
	"github.com/law-makers/pricewatch/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromeCandidates(t *testing.T) {
	env := map[string]string{"ProgramFiles": `C:\Program Files`}
	getenv := func(k string) string { return env[k] }

	linux := chromeCandidates("linux", "/home/u", getenv)
	assert.Contains(t, linux, "/usr/bin/chromium")
	assert.Contains(t, linux, "/home/u/.local/share/flatpak/exports/bin/org.chromium.Chromium")

	darwin := chromeCandidates("darwin", "", getenv)
	assert.Contains(t, darwin, "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome")

	windows := chromeCandidates("windows", "", getenv)
	require.NotEmpty(t, windows)
	for _, c := range windows {
		assert.True(t, strings.HasPrefix(c, `C:\Program Files`), c)
	}
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))

	assert.False(t, isExecutable(dir))
	assert.False(t, isExecutable(filepath.Join(dir, "missing")))
	if runtime.GOOS != "windows" {
		assert.False(t, isExecutable(plain))
		exe := filepath.Join(dir, "exe")
		require.NoError(t, os.WriteFile(exe, []byte("x"), 0o755))
		assert.True(t, isExecutable(exe))
	}
}

func TestFindChrome_EnvOverride(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("CHROME_PATH", exe)

	assert.Equal(t, exe, FindChrome())
}

func TestFetcher_Fetch_RendersPage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	if FindChrome() == "" {
		t.Skip("Chrome not available")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><span id="price"></span>
<script>document.getElementById("price").textContent = "$42.00";</script></body></html>`))
	}))
	defer server.Close()

	f := New(nil, identity.NewPool(nil, nil, time.Minute), 30*time.Second, 200*time.Millisecond)
	defer f.Close()

	html, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "$42.00")
}

func TestFetcher_Fetch_BlockedStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	if FindChrome() == "" {
		t.Skip("Chrome not available")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<html><body>denied</body></html>"))
	}))
	defer server.Close()

	f := New(nil, identity.NewPool(nil, nil, time.Minute), 30*time.Second, 0)
	defer f.Close()

	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrBlocked)
}
