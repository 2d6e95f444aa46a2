package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/abiiranathan/rex-frames/controllers"
	"github.com/abiiranathan/rex-frames/frames"
	"github.com/abiiranathan/rex-frames/routing"
)

// AnalysisOutput is the JSON structure emitted after a scan. It combines
// the authoring diagnostics with the routing table that was built.
type AnalysisOutput struct {
	// Diagnostics contains frame authoring issues, sorted by template and line.
	Diagnostics []frames.Diagnostic `json:"diagnostics"`

	// Exact contains the exact-match routing entries, sorted by identifier.
	Exact []routing.Entry `json:"exact"`

	// Prefixes contains the prefix routing entries in registration order.
	Prefixes []routing.PrefixEntry `json:"prefixes"`

	// Controllers lists discovered client-side controller names (optional).
	Controllers []string `json:"controllers,omitempty"`
}

// main is the CLI entry point for the frame analyzer.
func main() {
	// Command-line flags
	configPath := flag.String("config", "", "Path to YAML project configuration")
	templateRoot := flag.String("templates", "", "Directory scanned for frame templates")
	controllerRoot := flag.String("controllers", "", "Directory scanned for client-side controllers")
	genOut := flag.String("gen", "", "Write the generated routing module to this path")
	genPkg := flag.String("gen-pkg", "", "Package name for the generated module")
	watch := flag.Bool("watch", false, "Keep running and rebuild on template changes")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("rex-frames: config load failed", "error", err)
		os.Exit(1)
	}
	if *templateRoot != "" {
		cfg.TemplateRoot = *templateRoot
	}
	if *controllerRoot != "" {
		cfg.ControllerRoot = *controllerRoot
	}
	if *genOut != "" {
		cfg.Generate.Out = *genOut
	}
	if *genPkg != "" {
		cfg.Generate.Package = *genPkg
	}
	cfg.defaults()

	root := mustAbs(cfg.TemplateRoot)

	var registry *controllers.Registry
	if cfg.ControllerRoot != "" {
		registry = controllers.NewRegistry(mustAbs(cfg.ControllerRoot), logger)
	}

	build := func() error {
		return runBuild(root, cfg, registry, logger)
	}

	if err := build(); err != nil {
		logger.Error("rex-frames: build failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	// Watch mode: rebuild whenever the template root (or controller root)
	// changes, until interrupted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector := controllers.DirFingerprint(root)
	if cfg.ControllerRoot != "" {
		templates := detector
		ctrls := controllers.DirFingerprint(mustAbs(cfg.ControllerRoot))
		detector = func(ctx context.Context) (int64, error) {
			a, err := templates(ctx)
			if err != nil {
				return 0, err
			}
			b, err := ctrls(ctx)
			if err != nil {
				return 0, err
			}
			return a ^ (b << 1), nil
		}
	}

	watcher := controllers.NewWatcher(controllers.Options{
		Interval: time.Duration(cfg.Watch.Interval),
		Debounce: time.Duration(cfg.Watch.Debounce),
		Detector: detector,
		Logger:   logger,
	})
	watcher.OnChange(ctx, build)
}

// runBuild performs one full scan -> classify -> aggregate -> emit pass.
func runBuild(root string, cfg *Config, registry *controllers.Registry, logger *slog.Logger) error {
	report, err := frames.ScanDir(root, frames.DefaultScanConfig, logger)
	if err != nil {
		return err
	}
	table := routing.Aggregate(report.Documents, logger)

	output := AnalysisOutput{
		Diagnostics: report.Diagnostics,
		Exact:       table.Exact(),
		Prefixes:    table.Prefixes(),
	}

	if registry != nil {
		if err := registry.Reload(); err != nil {
			return err
		}
		output.Controllers = registry.Names()
	}

	if cfg.Generate.Out != "" {
		var buf bytes.Buffer
		if err := routing.WriteModule(&buf, cfg.Generate.Package, table); err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Generate.Out, buf.Bytes(), 0644); err != nil {
			return err
		}
		logger.Info("rex-frames: routing module written",
			"path", cfg.Generate.Out, "entries", table.Len())
	}

	encodeJSON(output)
	return nil
}

// encodeJSON serializes output as JSON and writes it to stdout.
func encodeJSON(output any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(output); err != nil {
		panic("failed to encode JSON: " + err.Error())
	}
}

// mustAbs resolves path to an absolute path.
//
// The program panics if resolution fails, since relative paths would
// invalidate the scan and the generated output.
func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic("could not resolve absolute path for " + path + ": " + err.Error())
	}
	return abs
}
