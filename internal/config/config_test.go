package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DocsRoot != "/config/docs" {
		t.Errorf("expected default docs_root %q, got %q", "/config/docs", cfg.DocsRoot)
	}
	if cfg.Port != 8099 {
		t.Errorf("expected default port 8099, got %d", cfg.Port)
	}
	if cfg.DefaultDocument != "index.md" {
		t.Errorf("expected default document %q, got %q", "index.md", cfg.DefaultDocument)
	}
	if !cfg.Upload.Enabled {
		t.Error("expected uploads enabled by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docs-addon.yml")

	original := DefaultConfig()
	original.DocsRoot = "/data/docs"
	original.Port = 9100
	original.IngressBaseURL = "/api/hassio_ingress/abc"
	original.ExcludeFiles = []string{".DS_Store", "*.tmp"}
	original.Upload.MaxBodyMiB = 128

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.DocsRoot != original.DocsRoot {
		t.Errorf("docs_root: got %q, want %q", loaded.DocsRoot, original.DocsRoot)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.IngressBaseURL != original.IngressBaseURL {
		t.Errorf("ingress_base_url: got %q, want %q", loaded.IngressBaseURL, original.IngressBaseURL)
	}
	if loaded.Upload.MaxBodyMiB != original.Upload.MaxBodyMiB {
		t.Errorf("upload.max_body_mib: got %d, want %d", loaded.Upload.MaxBodyMiB, original.Upload.MaxBodyMiB)
	}
	if len(loaded.ExcludeFiles) != len(original.ExcludeFiles) {
		t.Errorf("exclude_files length: got %d, want %d", len(loaded.ExcludeFiles), len(original.ExcludeFiles))
	}
	for i, v := range loaded.ExcludeFiles {
		if v != original.ExcludeFiles[i] {
			t.Errorf("exclude_files[%d]: got %q, want %q", i, v, original.ExcludeFiles[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8099 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override docs root via env var.
	os.Setenv("DOCSADDON_DOCS_ROOT", "/tmp/docs")
	defer os.Unsetenv("DOCSADDON_DOCS_ROOT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DocsRoot != "/tmp/docs" {
		t.Errorf("env override failed: got %q, want %q", loaded.DocsRoot, "/tmp/docs")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptyDocsRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DocsRoot = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty docs_root")
	}
}

func TestValidateBadPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := DefaultConfig()
		cfg.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for port %d", port)
		}
	}
}

func TestValidateAbsoluteDefaultDocument(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultDocument = "/etc/passwd"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for absolute default_document")
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid log_level")
	}
}

func TestValidateBadIngressBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IngressBaseURL = "api/hassio_ingress/abc"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for relative ingress_base_url")
	}
}

func TestValidateNegativeUploadLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Upload.MaxBodyMiB = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative upload.max_body_mib")
	}
}
