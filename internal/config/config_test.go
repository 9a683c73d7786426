package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipstash/snipstash/internal/apperrors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoad_FileAbsentReturnsDefaults(t *testing.T) {
	s := newTestStore(t)

	c, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, c.ServerURL)
	assert.Equal(t, DefaultPageSize, c.DefaultPageSize)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := &Config{ServerURL: "https://stash.example.tld", DefaultPageSize: 50}

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_RestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	s := newTestStore(t)
	require.NoError(t, s.Save(&Config{ServerURL: "https://x.tld", DefaultPageSize: 20}))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	_, err = s.Load()
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
}

func TestLoad_ZeroPageSizeFallsBack(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"server_url":"https://x.tld","default_page_size":0}`), 0o600))

	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, c.DefaultPageSize)
}

func TestSave_SecretNeverWritten(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(&Config{ServerURL: "https://x.tld", DefaultPageSize: 20}))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "token")
	assert.NotContains(t, string(raw), "secret")
}
