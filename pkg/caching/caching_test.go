package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pages")
	c := NewCache(dir, time.Hour)

	if _, ok := c.Get("https://example.com/en/terms.html"); ok {
		t.Fatal("Get() hit on empty cache")
	}
	if err := c.Set("https://example.com/en/terms.html", []byte("<html></html>")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok := c.Get("https://example.com/en/terms.html")
	if !ok || string(data) != "<html></html>" {
		t.Errorf("Get() = %q, %v", data, ok)
	}
	if _, ok := c.Get("https://example.com/ja/terms.html"); ok {
		t.Error("Get() hit for a different URL")
	}
}

func TestCache_Expired(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, time.Minute)
	url := "https://example.com/en/terms.html"
	if err := c.Set(url, []byte("old")); err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(filepath.Join(dir, c.key(url)), past, past); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(url); ok {
		t.Error("Get() returned an expired page")
	}
}
