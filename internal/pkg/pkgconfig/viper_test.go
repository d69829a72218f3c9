package pkgconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "int: 42\nbool: true\nfloat: 0.25\nstring: hi\nttl: 90s\narray: a, b ,c\nlist:\n  - C\n  - N\n")

	cfg, err := NewViper(Options{File: path})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetFloat("float"); got != 0.25 {
		t.Fatalf("GetFloat: expected 0.25, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := cfg.GetDuration("ttl"); got != 90*time.Second {
		t.Fatalf("GetDuration: expected 90s, got %v", got)
	}
	if got := cfg.GetArray("array"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GetArray: unexpected value: %#v", got)
	}
	if got := cfg.GetArray("list"); !reflect.DeepEqual(got, []string{"C", "N"}) {
		t.Fatalf("GetArray (sequence): unexpected value: %#v", got)
	}
	if cfg.IsSet("missing") {
		t.Fatalf("IsSet: expected missing key to be unset")
	}
}

func TestViperMissingFile(t *testing.T) {
	if _, err := NewViper(Options{File: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestViperPriority(t *testing.T) {
	path := writeConfigFile(t, "dataset:\n  test_size: 0.3\n  sheet: fromfile\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("test-size", 0.2, "")
	flags.Int("workers", 4, "")
	if err := flags.Parse([]string{"--test-size", "0.1"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	t.Setenv("RETIP_DATASET_SHEET", "fromenv")

	cfg, err := NewViper(Options{
		File:     path,
		Defaults: map[string]any{"log.level": "info"},
		Flags: map[string]*pflag.Flag{
			"dataset.test_size":   flags.Lookup("test-size"),
			"descriptors.workers": flags.Lookup("workers"),
		},
	})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetFloat("dataset.test_size"); got != 0.1 {
		t.Fatalf("expected flag to win, got %v", got)
	}
	if got := cfg.GetString("dataset.sheet"); got != "fromenv" {
		t.Fatalf("expected env to win over file, got %q", got)
	}
	if got := cfg.GetInt("descriptors.workers"); got != 4 {
		t.Fatalf("expected flag default, got %d", got)
	}
	if got := cfg.GetString("log.level"); got != "info" {
		t.Fatalf("expected default, got %q", got)
	}
}
