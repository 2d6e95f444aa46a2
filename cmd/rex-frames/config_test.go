package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rex-frames.yaml")
	content := `
template_root: views
controller_root: assets/controllers
generate:
  out: internal/routes/frames.go
  package: routes
watch:
  interval: 2s
  debounce: 500ms
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.defaults()

	if cfg.TemplateRoot != "views" {
		t.Errorf("template_root = %q, want views", cfg.TemplateRoot)
	}
	if cfg.ControllerRoot != "assets/controllers" {
		t.Errorf("controller_root = %q", cfg.ControllerRoot)
	}
	if cfg.Generate.Out != "internal/routes/frames.go" {
		t.Errorf("generate.out = %q", cfg.Generate.Out)
	}
	if time.Duration(cfg.Watch.Interval) != 2*time.Second {
		t.Errorf("watch.interval = %v, want 2s", time.Duration(cfg.Watch.Interval))
	}
	if time.Duration(cfg.Watch.Debounce) != 500*time.Millisecond {
		t.Errorf("watch.debounce = %v, want 500ms", time.Duration(cfg.Watch.Debounce))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.defaults()

	if cfg.TemplateRoot != "." {
		t.Errorf("template_root default = %q, want .", cfg.TemplateRoot)
	}
	if cfg.Generate.Package != "routes" {
		t.Errorf("generate.package default = %q, want routes", cfg.Generate.Package)
	}
	if time.Duration(cfg.Watch.Interval) != time.Second {
		t.Errorf("watch.interval default = %v, want 1s", time.Duration(cfg.Watch.Interval))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig("/does/not/exist.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
