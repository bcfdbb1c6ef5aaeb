package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/topoviz/topoviz/pkg/cache"
)

func TestRootCommand(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}

	want := []string{"generate", "build", "export", "list", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.SetLogLevel(LogDebug)

	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("GetLevel() = %v, want %v", got, log.DebugLevel)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, want a %s directory", dir, appName)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	store, err := newCache(ctx, true, "")
	if err != nil {
		t.Fatalf("newCache(noCache) error = %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want *cache.NullCache", store)
	}

	store, err = newCache(ctx, false, "")
	if err != nil {
		t.Fatalf("newCache() error = %v", err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("newCache() = %T, want *cache.FileCache", store)
	}
}
