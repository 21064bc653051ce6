package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromYAMLAndEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.yaml")

	yaml := `
tools:
  gh: /opt/gh
  timeout: 5s

watch:
  interval: 30s
  notify: false

export:
  path: /tmp/stack.json
`
	if err := os.WriteFile(cfgFile, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	os.Setenv("STACK_STATUS_INTERVAL", "7s")
	defer os.Unsetenv("STACK_STATUS_INTERVAL")

	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Watch.Interval != 7*time.Second {
		t.Errorf("env override failed, interval = %v", c.Watch.Interval)
	}
	if c.Tools.Gh != "/opt/gh" {
		t.Errorf("yaml value lost, gh = %q", c.Tools.Gh)
	}
	if c.Tools.Gt != "gt" {
		t.Errorf("default lost, gt = %q", c.Tools.Gt)
	}
	if c.Export.Path != "/tmp/stack.json" {
		t.Errorf("export path = %q", c.Export.Path)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if c.Watch.Interval != 10*time.Second || c.Tools.Timeout != 10*time.Second {
		t.Errorf("defaults not applied: %+v", c)
	}
	if !c.Watch.Notify {
		t.Error("notify should default on")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	c, _ := Load("")
	c.Watch.Interval = 42 * time.Second
	if err := Save(path, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Watch.Interval != 42*time.Second {
		t.Errorf("round trip lost interval: %v", got.Watch.Interval)
	}
}
