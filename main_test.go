package main

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/chestsync/internal/config"
)

func TestProbeTerminalIncludesStandardDescriptors(t *testing.T) {
	info := probeTerminal(104)
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
	if info.Required != 104 {
		t.Fatalf("expected the required width kept, got %d", info.Required)
	}
}

func TestTTYWarning(t *testing.T) {
	if w := (ttyDetails{Required: 52}).warning(); w != "" {
		t.Fatalf("expected no warning without a terminal, got %q", w)
	}
	narrow := ttyDetails{Required: 104, Detected: &ttyDetected{Source: "stdout", Width: 80, Height: 24}}
	if w := narrow.warning(); !strings.Contains(w, "80 columns wide, the viewports need 104") {
		t.Fatalf("unexpected warning %q", w)
	}
	narrow.Detected.Width = 120
	if w := narrow.warning(); w != "" {
		t.Fatalf("expected no warning for a wide terminal, got %q", w)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: config.App{
			World:     "farm.yaml",
			Width:     80,
			Height:    24,
			Viewports: 2,
			Tick:      50 * time.Millisecond,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"world":     "farm.yaml",
			"width":     "80",
			"height":    "24",
			"viewports": "2",
			"verbose":   "true",
		},
		Args: []string{"--world", "farm.yaml", "--viewports", "2"},
	}

	payload := startupTracePayload(cfg, ttyDetails{Required: 104})

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["world"] != "farm.yaml" {
		t.Fatalf("expected world flag %q, got %v", "farm.yaml", flagsValue["world"])
	}
	if flagsValue["viewports"] != "2" {
		t.Fatalf("expected viewports 2, got %v", flagsValue["viewports"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if tty, ok := payload["tty"].(ttyDetails); !ok || tty.Required != 104 {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
