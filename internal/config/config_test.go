package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/chestsync/internal/container"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Viewports != 1 || cfg.App.Tick != defaultTick {
		t.Fatalf("unexpected app defaults: %+v", cfg.App)
	}
	if !cfg.Features.Search || cfg.Features.SortKey != "name" {
		t.Fatalf("unexpected feature defaults: %+v", cfg.Features)
	}
	if len(cfg.Controls.ScrollUp) == 0 || cfg.Controls.ScrollPage[0] != "shift" {
		t.Fatalf("unexpected controls: %+v", cfg.Controls)
	}
}

func TestLoadArgsEnvAndFlags(t *testing.T) {
	env := []string{"CHESTSYNC_WIDTH=90", "CHESTSYNC_TRACE=true", "CHESTSYNC_TICK=250ms"}
	cfg, err := LoadArgs([]string{"-width", "120", "-viewports", "2"}, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Width != 120 {
		t.Fatalf("flag should win over env, got width %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace || cfg.App.Tick != 250*time.Millisecond {
		t.Fatalf("env values not applied: %+v %+v", cfg.Logging, cfg.App)
	}
	if cfg.App.Viewports != 2 || cfg.Flags["viewports"] != "2" {
		t.Fatalf("viewports flag not recorded: %+v", cfg.Flags)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-viewports", "0"},
		{"-viewports", "9"},
		{"-tick", "1ms"},
		{"-bogus"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

const sampleFile = `
app:
  viewports: 2
  churn: 0s
features:
  search: false
  sort_key: quality
storage:
  default:
    resize: small
  kinds:
    Barrel:
      resize: large
      rows: 4
      filters: ["category:food"]
      sorts: ["-quality"]
controls:
  scroll_up: ["w"]
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chestsync.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsReadsConfigFile(t *testing.T) {
	path := writeFile(t, sampleFile)
	cfg, err := LoadArgs([]string{"-config", path, "-viewports", "3"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.Viewports != 3 {
		t.Fatalf("flag should override file, got %d", cfg.App.Viewports)
	}
	if cfg.App.Churn != 0 || cfg.App.Tick != defaultTick {
		t.Fatalf("unexpected durations: %+v", cfg.App)
	}
	if cfg.Features.Search || !cfg.Features.Sort || cfg.Features.SortKey != "quality" {
		t.Fatalf("unexpected features: %+v", cfg.Features)
	}
	if len(cfg.Controls.ScrollUp) != 1 || cfg.Controls.ScrollUp[0] != "w" {
		t.Fatalf("unexpected controls: %+v", cfg.Controls)
	}
	if len(cfg.Controls.ScrollDown) == 0 {
		t.Fatalf("missing controls should keep defaults")
	}

	defaults, kinds, err := cfg.Storage.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if defaults.Resize != container.TierSmall {
		t.Fatalf("expected small default tier, got %s", defaults.Resize)
	}
	barrel, ok := kinds["barrel"]
	if !ok {
		t.Fatalf("expected barrel kind, got %v", kinds)
	}
	if barrel.Resize != container.TierLarge || barrel.Rows != 4 || barrel.Sorts[0] != "-quality" {
		t.Fatalf("unexpected barrel options: %+v", barrel)
	}
}

func TestLoadArgsRejectsUnknownTier(t *testing.T) {
	path := writeFile(t, "storage:\n  default:\n    resize: enormous\n")
	if _, err := LoadArgs([]string{"-config", path}, nil); err == nil {
		t.Fatalf("expected unknown tier to fail")
	}
}

func TestReloadKeepsOverrides(t *testing.T) {
	path := writeFile(t, sampleFile)
	cfg, err := LoadArgs([]string{"-config", path, "-viewports", "3"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if err := os.WriteFile(path, []byte("features:\n  search: true\napp:\n  viewports: 1\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	next, err := Reload(cfg)
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if !next.Features.Search {
		t.Fatalf("expected reloaded feature value")
	}
	if next.App.Viewports != 3 {
		t.Fatalf("flag override lost on reload, got %d", next.App.Viewports)
	}

	if err := os.WriteFile(path, []byte("app:\n  tick: 1ms\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	kept, err := Reload(next)
	if err == nil {
		t.Fatalf("expected invalid reload to fail")
	}
	if kept.App.Viewports != 3 || !kept.Features.Search {
		t.Fatalf("failed reload must return the previous config")
	}
}

func TestWatchWithoutFileIsNoop(t *testing.T) {
	if err := Watch(Default(), func(Config) { t.Fatalf("unexpected reload") }); err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
}
