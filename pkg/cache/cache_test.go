package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", data, ok, err)
	}
	if string(data) != "value" {
		t.Errorf("Get() = %q, want value", data)
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())

	_, ok, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() reported a hit for a missing key")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() returned an expired entry")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() found a deleted key")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache_Clear(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("Get() found an entry after Clear")
	}

	// The cache stays usable after clearing.
	if err := c.Set(ctx, "c", []byte("3"), 0); err != nil {
		t.Errorf("Set() after Clear error = %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("NullCache stored a value")
	}
}

func TestArtifactKey(t *testing.T) {
	k1 := ArtifactKey("digraph G {}", "svg")
	k2 := ArtifactKey("digraph G {}", "svg")
	if k1 != k2 {
		t.Error("identical inputs produced different keys")
	}

	if ArtifactKey("digraph G {}", "png") == k1 {
		t.Error("different formats share a key")
	}
	if ArtifactKey("digraph H {}", "svg") == k1 {
		t.Error("different DOT shares a key")
	}
}
