package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/chestsync/internal/app"
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/ui"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probeTerminal(ui.FrameWidth(runtimeCfg.App.Viewports))
	events.App.Start(startupTracePayload(runtimeCfg, tty))
	if warning := tty.warning(); warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}

	err := app.Run(runtimeCfg)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type ttyDetails struct {
	// Required is the width the configured viewports need side by side.
	Required int              `json:"required"`
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// warning reports a terminal too narrow for every viewport. Nothing is said
// when no terminal was found.
func (d ttyDetails) warning() string {
	if d.Detected == nil || d.Detected.Width >= d.Required {
		return ""
	}
	return fmt.Sprintf("warning: %s is %d columns wide, the viewports need %d", d.Detected.Source, d.Detected.Width, d.Required)
}

// probeTerminal inspects the standard descriptors for terminal support and
// size. The first terminal found decides the detected size.
func probeTerminal(required int) ttyDetails {
	details := ttyDetails{Required: required}
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		entry := ttyProbeResult{Name: probeName(f)}
		fd := int(f.Fd())
		if fd < 0 || !term.IsTerminal(fd) {
			details.Probes = append(details.Probes, entry)
			continue
		}
		entry.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Width, entry.Height = width, height
			if details.Detected == nil {
				details.Detected = &ttyDetected{Source: entry.Name, Width: width, Height: height}
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}

func probeName(f *os.File) string {
	switch f {
	case os.Stdin:
		return "stdin"
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	return f.Name()
}
