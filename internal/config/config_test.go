package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	opts := Default()
	if err := opts.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if opts.ShiftWidth != 4 {
		t.Errorf("shift width = %d, want 4", opts.ShiftWidth)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if opts != Default() {
		t.Errorf("opts = %+v, want defaults", opts)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vicore.toml")
	content := "tab_width = 2\nshift_width = 2\nlog_level = \"debug\"\ncolor = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.TabWidth != 2 || opts.ShiftWidth != 2 {
		t.Errorf("widths = %d/%d, want 2/2", opts.TabWidth, opts.ShiftWidth)
	}
	if opts.LogLevel != "debug" || opts.Color {
		t.Errorf("log_level = %q color = %v", opts.LogLevel, opts.Color)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vicore.toml")
	if err := os.WriteFile(path, []byte("tab_width = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML produced no error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VICORE_SHIFT_WIDTH", "8")
	t.Setenv("VICORE_LOG_LEVEL", "warn")
	t.Setenv("VICORE_CLIPBOARD", "false")

	opts, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.ShiftWidth != 8 {
		t.Errorf("shift width = %d, want 8", opts.ShiftWidth)
	}
	if opts.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", opts.LogLevel)
	}
	if opts.Clipboard {
		t.Error("clipboard override ignored")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{name: "zero tab width", mutate: func(o *Options) { o.TabWidth = 0 }},
		{name: "huge shift width", mutate: func(o *Options) { o.ShiftWidth = 99 }},
		{name: "bad log level", mutate: func(o *Options) { o.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)
			if err := opts.Validate(); err == nil {
				t.Error("invalid options passed validation")
			}
		})
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vicore.toml")
	if err := os.WriteFile(path, []byte("shift_width = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Options, 1)
	w, err := Watch(path, func(opts Options) {
		select {
		case reloaded <- opts:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("shift_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case opts := <-reloaded:
		if opts.ShiftWidth != 2 {
			t.Errorf("shift width = %d, want 2", opts.ShiftWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vicore.toml")
	w, err := Watch(path, func(Options) {})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
