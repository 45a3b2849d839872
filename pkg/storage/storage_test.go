package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndReadFile(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "out.xml")

	if err := s.SaveFile(path, []byte("<Mapping/>")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "<Mapping/>" {
		t.Errorf("ReadFile() = %q, want <Mapping/>", data)
	}
}

func TestHasFile(t *testing.T) {
	s := &Storage{}
	dir := t.TempDir()
	path := filepath.Join(dir, "present.xml")

	if s.HasFile(path) {
		t.Error("HasFile() = true before file exists")
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if !s.HasFile(path) {
		t.Error("HasFile() = false after file written")
	}
}

func TestGetFileStats(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "sized.xml")

	if err := os.WriteFile(path, []byte("12345"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != 5 {
		t.Errorf("SizeBytes = %d, want 5", stats.SizeBytes)
	}

	if _, err := s.GetFileStats(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("GetFileStats() succeeded for missing file, want error")
	}
}
