package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tools struct {
		Gt      string        `yaml:"gt"`
		Gh      string        `yaml:"gh"`
		Git     string        `yaml:"git"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"tools"`

	Watch struct {
		Interval time.Duration `yaml:"interval"`
		Notify   bool          `yaml:"notify"`
	} `yaml:"watch"`

	Display struct {
		Details bool `yaml:"details"`
	} `yaml:"display"`

	Export struct {
		Path string `yaml:"path"`
	} `yaml:"export"`

	Log struct {
		Path  string `yaml:"path"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads the config file when present and applies env overrides on
// top of defaults. Every field has a usable default: a missing file is
// not an error.
func Load(path string) (Config, error) {
	var c Config

	c.Tools.Gt = "gt"
	c.Tools.Gh = "gh"
	c.Tools.Git = "git"
	c.Tools.Timeout = 10 * time.Second
	c.Watch.Interval = 10 * time.Second
	c.Watch.Notify = true
	c.Log.Path = expandHome("~/.cache/stack-status/watch.log")
	c.Log.Level = "info"

	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}

	if v := os.Getenv("STACK_STATUS_GT_BIN"); v != "" {
		c.Tools.Gt = v
	}
	if v := os.Getenv("STACK_STATUS_GH_BIN"); v != "" {
		c.Tools.Gh = v
	}
	if v := os.Getenv("STACK_STATUS_GIT_BIN"); v != "" {
		c.Tools.Git = v
	}
	if v := os.Getenv("STACK_STATUS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Tools.Timeout = d
		}
	}
	if v := os.Getenv("STACK_STATUS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Watch.Interval = d
		}
	}
	if v := os.Getenv("STACK_STATUS_EXPORT_PATH"); v != "" {
		c.Export.Path = v
	}
	if v := os.Getenv("STACK_STATUS_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("STACK_STATUS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if c.Watch.Interval <= 0 {
		c.Watch.Interval = 10 * time.Second
	}
	if c.Tools.Timeout <= 0 {
		c.Tools.Timeout = 10 * time.Second
	}

	c.Export.Path = expandHome(c.Export.Path)
	c.Log.Path = expandHome(c.Log.Path)

	return c, nil
}

// Save writes the config atomically under an exclusive lock so concurrent
// invocations cannot tear the file.
func Save(path string, c Config) error {
	if path == "" {
		return errors.New("empty config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lockFile := path + ".lock"
	lf, err := os.OpenFile(lockFile, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = lf.Close() }()

	if runtime.GOOS != "windows" {
		if err := syscall.Flock(int(lf.Fd()), syscall.LOCK_EX); err != nil {
			return err
		}
		defer func() { _ = syscall.Flock(int(lf.Fd()), syscall.LOCK_UN) }()
	}

	b, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(b); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if h, _ := os.UserHomeDir(); h != "" {
			return h + p[1:]
		}
	}
	return p
}
