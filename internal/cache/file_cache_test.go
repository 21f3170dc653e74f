package cache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) (*FileCache, *time.Time) {
	t.Helper()
	c, err := NewFileCache(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	clock := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestNewFileCache_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "abfahrt")
	c, err := NewFileCache(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("cache directory was not created: %v", err)
	}
}

func TestFileCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	key := "https://www.mvg.de/.rest/zdm/stations"
	value := []byte(`[{"id":"de:09162:2"}]`)

	if err := c.Set(key, value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() returned false, want true")
	}
	if string(got) != string(value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}
}

func TestFileCache_GetMissing(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	if _, ok := c.Get("missing"); ok {
		t.Error("Get() returned true for a missing key")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, clock := newTestCache(t, time.Hour)

	if err := c.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	*clock = clock.Add(59 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired before its TTL")
	}

	*clock = clock.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry still served after its TTL")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCache_CorruptEntryIsDropped(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	if err := os.WriteFile(c.path("k"), []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("corrupt entry should not be served")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_DistinctKeys(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	_ = c.Set("a", []byte("1"))
	_ = c.Set("b", []byte("2"))

	a, _ := c.Get("a")
	b, _ := c.Get("b")
	if string(a) != "1" || string(b) != "2" {
		t.Errorf("got a=%q b=%q", a, b)
	}
	if c.path("a") == c.path("b") {
		t.Error("different keys must map to different files")
	}
}

func TestFileCache_Clear(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(k, []byte(k)); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files are left alone
	other := filepath.Join(c.Dir(), "README")
	_ = os.WriteFile(other, []byte("keep"), 0600)

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d entries, want 3", n)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear()")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("Clear() removed a foreign file")
	}
}

func TestFileCache_Cleanup(t *testing.T) {
	c, clock := newTestCache(t, time.Hour)

	_ = c.Set("old", []byte("1"))
	*clock = clock.Add(50 * time.Minute)
	_ = c.Set("new", []byte("2"))
	*clock = clock.Add(20 * time.Minute)
	_ = os.WriteFile(filepath.Join(c.Dir(), "broken.json"), []byte("{"), 0600)

	n, err := c.Cleanup()
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Cleanup() removed %d entries, want 2", n)
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("fresh entry removed by Cleanup()")
	}
}

func TestFileCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set("shared", []byte("value"))
			_, _ = c.Get("shared")
		}()
	}
	wg.Wait()

	if got, ok := c.Get("shared"); !ok || string(got) != "value" {
		t.Errorf("Get() = %q, %v", got, ok)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := DefaultCacheDir(); got != filepath.Join("/tmp/xdg", "abfahrt") {
		t.Errorf("DefaultCacheDir() = %q", got)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	if got := DefaultCacheDir(); filepath.Base(got) != "abfahrt" && filepath.Base(got) != "abfahrt-cache" {
		t.Errorf("DefaultCacheDir() = %q", got)
	}
}
