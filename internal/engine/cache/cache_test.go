package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	entry := NewEntry("k", json.RawMessage(`{"total_score":80}`), time.Minute)

	assert.False(t, entry.Expired())
	assert.LessOrEqual(t, entry.Age(), time.Second)

	var decoded struct {
		TotalScore int `json:"total_score"`
	}
	require.NoError(t, entry.Decode(&decoded))
	assert.Equal(t, 80, decoded.TotalScore)

	entry.ExpiresAt = time.Now().Add(-time.Second)
	assert.True(t, entry.Expired())
}

func TestKey(t *testing.T) {
	k1, err := Key("evaluate", map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	k2, err := Key("evaluate", map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	k3, err := Key("compare", map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, err = Key("x", func() {})
	require.Error(t, err)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, time.Minute)
	require.NoError(t, err)
	assert.True(t, store.Enabled())
	assert.Equal(t, dir, store.Dir())

	data := json.RawMessage(`{"hello":"world"}`)

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set("a/b:c", data))

		entry, getErr := store.Get("a/b:c")
		require.NoError(t, getErr)
		assert.JSONEq(t, string(data), string(entry.Data))

		count, countErr := store.Count()
		require.NoError(t, countErr)
		assert.Equal(t, 1, count)
		assert.FileExists(t, filepath.Join(dir, "a_b_c.json"))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete("a/b:c"))
		require.NoError(t, store.Delete("a/b:c"))

		_, getErr := store.Get("a/b:c")
		assert.ErrorIs(t, getErr, ErrCacheNotFound)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Set("k1", data))
		require.NoError(t, store.Set("k2", data))
		n, clearErr := store.Clear()
		require.NoError(t, clearErr)
		assert.Equal(t, 2, n)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		assert.ErrorIs(t, store.Set("", data), ErrInvalidCacheKey)
		_, getErr := store.Get("")
		assert.ErrorIs(t, getErr, ErrInvalidCacheKey)
	})
}

func TestFileStore_ExpiryAndPrune(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, time.Minute)
	require.NoError(t, err)

	expired := NewEntry("old", json.RawMessage(`1`), -time.Second)
	encoded, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), encoded, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0o600))
	require.NoError(t, store.Set("fresh", json.RawMessage(`2`)))

	n, err := store.Prune()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), encoded, 0o600))
	_, err = store.Get("old")
	assert.ErrorIs(t, err, ErrCacheExpired)
	assert.NoFileExists(t, filepath.Join(dir, "old.json"))
}

func TestFileStore_Disabled(t *testing.T) {
	store, err := NewFileStore("", false, 0)
	require.NoError(t, err)
	assert.False(t, store.Enabled())

	assert.ErrorIs(t, store.Set("k", json.RawMessage(`1`)), ErrCacheDisabled)
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrCacheDisabled)
	_, err = store.Prune()
	assert.ErrorIs(t, err, ErrCacheDisabled)

	var nilStore *FileStore
	assert.False(t, nilStore.Enabled())

	_, err = NewFileStore("", true, time.Minute)
	require.Error(t, err)
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "3600", want: time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "10", wantErr: true},
		{in: "30d", wantErr: true},
		{in: "9000h", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvTTL, "120")
	assert.Equal(t, 2*time.Minute, TTLFromEnv(DefaultTTL))

	t.Setenv(EnvTTL, "bogus")
	assert.Equal(t, DefaultTTL, TTLFromEnv(DefaultTTL))

	t.Setenv(EnvCacheDisabled, "true")
	assert.True(t, DisabledFromEnv())
	t.Setenv(EnvCacheDisabled, "")
	assert.False(t, DisabledFromEnv())
}
