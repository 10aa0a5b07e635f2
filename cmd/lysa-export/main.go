// Command lysa-export converts a host scene-graph snapshot into the Lysa
// engine's JSON scene description and resource manifest, then drives the
// external mesh exporter and asset-pack converter.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/atlas-foundry/lysa-go-sdk/lysa"
)

func main() {
	var (
		scenePath    = flag.String("scene", "", "scene snapshot JSON produced by the host tool")
		configPath   = flag.String("config", "", "TOML export settings file")
		exportMode   = flag.String("export", string(lysa.ExportScene), "export mode (scene|resources)")
		resourceMode = flag.String("resources", string(lysa.ResourceExport), "resource mode (export|link)")
		linkFile     = flag.String("link-file", "", "manifest to link instead of exporting one")
		format       = flag.String("format", string(lysa.FormatBC7), "compression format (bc1|bc2|bc3|bc7)")
		threads      = flag.Int("threads", 0, "converter thread count hint (0 = auto)")
		reconcile    = flag.Bool("reconcile", true, "reconcile duplicate mesh names")
		convert      = flag.Bool("convert", true, "convert the exported binary to an assets pack")
		meshExporter = flag.String("mesh-exporter", "", "external mesh exporter command")
		converter    = flag.String("gltf2lysa", lysa.ConverterBinary, "asset-pack converter binary")
		watch        = flag.Bool("watch", false, "re-export whenever the snapshot changes")
		debug        = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	if *scenePath == "" {
		log.Fatal("please provide a scene snapshot with -scene")
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	settings := lysa.DefaultSettings()
	if *configPath != "" {
		settings, err = lysa.LoadSettings(*configPath)
		if err != nil {
			logger.Fatalw("load settings", "path", *configPath, "error", err)
		}
	}
	// Flags set explicitly on the command line override the settings file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "export":
			settings.Export = lysa.ExportMode(*exportMode)
		case "resources":
			settings.Resources = lysa.ResourceMode(*resourceMode)
		case "link-file":
			settings.LinkFile = *linkFile
		case "format":
			settings.Format = lysa.CompressionFormat(*format)
		case "threads":
			settings.Threads = *threads
		case "reconcile":
			settings.ReconcileMeshNames = *reconcile
		case "convert":
			settings.ConvertAssets = *convert
		}
	})
	if settings.ProjectDirectory == "" {
		settings.ProjectDirectory = "."
	}

	pipeline := lysa.NewPipeline(settings, logger)
	pipeline.ConverterPath = *converter
	if *meshExporter != "" {
		pipeline.Exporter = lysa.CommandExporter{
			Command: *meshExporter,
			Source:  *scenePath,
			Runner:  pipeline.Runner,
		}
	}

	export := func() {
		roots, err := lysa.LoadSnapshot(*scenePath)
		if err != nil {
			logger.Errorw("load snapshot", "path", *scenePath, "error", err)
			if !*watch {
				os.Exit(1)
			}
			return
		}
		if err := pipeline.Run(context.Background(), *scenePath, roots); err != nil {
			logger.Errorw("export failed", "error", err)
			if !*watch {
				os.Exit(1)
			}
			return
		}
		logger.Infow("export complete", "scene", *scenePath)
	}

	export()
	if !*watch {
		return
	}
	if err := watchSnapshot(*scenePath, logger, export); err != nil {
		logger.Fatalw("watch", "error", err)
	}
}

// watchSnapshot re-runs export every time the snapshot file is rewritten.
// The directory is watched, not the file: host tools replace the file on
// save, which drops a plain file watch.
func watchSnapshot(path string, logger *zap.SugaredLogger, export func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	logger.Infow("watching snapshot", "path", path)
	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debugw("snapshot changed", "op", event.Op.String())
			export()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watch error", "error", err)
		}
	}
}

// newLogger mirrors the usual dev/prod split: human-readable output, debug
// level on request.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
