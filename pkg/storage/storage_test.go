package storage

import (
	"testing"
)

func TestSaveAndReadFile(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SaveFile("en/terms.html", []byte("<p>terms</p>")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := s.ReadFile("en/terms.html")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "<p>terms</p>" {
		t.Errorf("ReadFile() = %q", data)
	}

	stats, err := s.GetFileStats("en/terms.html")
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != int64(len("<p>terms</p>")) {
		t.Errorf("SizeBytes = %d", stats.SizeBytes)
	}
	if stats.ModTime.IsZero() {
		t.Error("ModTime is zero")
	}
}

func TestReadFile_Missing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.ReadFile("missing.html"); err == nil {
		t.Error("ReadFile() error = nil, want error")
	}
	if _, err := s.GetFileStats("missing.html"); err == nil {
		t.Error("GetFileStats() error = nil, want error")
	}
}
