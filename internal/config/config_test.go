package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketgrid/internal/domain"
	"ticketgrid/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cs := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Feed.Interval = Duration{time.Second}
	cfg.Feed.UIDFormat = domain.UIDHex
	cfg.Feed.Insert = domain.InsertPrepend
	cfg.Audit.Path = filepath.Join(t.TempDir(), "tickets.db")
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1s")
	assert.Contains(t, string(raw), "[feed]")
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[feed]\ncolumns = 8\ninterval = \"50ms\"\n"), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Feed.Columns)
	assert.Equal(t, 50*time.Millisecond, cfg.Feed.Interval.Duration)
	assert.Equal(t, domain.UIDDecimal, cfg.Feed.UIDFormat)
	assert.True(t, cfg.UI.ConfirmDelete)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero columns", "[feed]\ncolumns = 0\n"},
		{"bad interval", "[feed]\ninterval = \"soon\"\n"},
		{"negative interval", "[feed]\ninterval = \"-1s\"\n"},
		{"bad format", "[feed]\nuid_format = \"octal\"\n"},
		{"bad insert", "[feed]\ninsert = \"middle\"\n"},
		{"audit without path", "[audit]\nenabled = true\npath = \"\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"not toml", "feed = [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))

			_, err := NewConfigService(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := NewConfigServiceWithBus(path, bus).Load()
	require.NoError(t, err)

	select {
	case e := <-got:
		assert.Equal(t, path, e.(eventbus.ConfigLoadedEvent).Path)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoaded not published")
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
		_, err := ParseLevel(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
