package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b", "c")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Directory should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}

	// Second call is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Idempotent create should not fail, got %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := WriteFileAtomic(path, []byte("hello")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Expected 'hello', got '%s'", data)
	}

	// Overwrite replaces content completely
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("Expected no error on rewrite, got %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("Expected 'second', got '%s'", data)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("Leftover temp file: %s", e.Name())
		}
	}
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.txt")
	if err := WriteFileAtomic(path, []byte("x")); err == nil {
		t.Error("Expected error when parent directory is missing")
	}
}

func TestGetHomePicturesDir(t *testing.T) {
	dir, err := GetHomePicturesDir("ai-image-studio")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join("Pictures", "ai-image-studio")) {
		t.Errorf("Unexpected pictures dir: %s", dir)
	}
}
