package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kochview/internal/export"
	"kochview/internal/koch"
	"kochview/internal/tui"
)

func main() {
	var (
		mode     = flag.String("mode", "triangle", "seed construction: triangle (snowflake) or segment (single edge)")
		maxSegs  = flag.Int("max-segments", 0, "discard generations above this many segments (0 = no limit)")
		out      = flag.String("out", "koch.geojson", "file written by the save key; extension picks the format ("+strings.Join(export.Formats, ", ")+")")
		pngScale = flag.Int("png-scale", 4, "PNG export size as a multiple of the braille canvas")
		logPath  = flag.String("log", "", "write logs to this file")
		debug    = flag.Bool("debug", false, "log per-event geometry")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [seed file]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	m, err := koch.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	if *pngScale < 1 || *pngScale > 64 {
		log.Fatalf("-png-scale: %d out of range 1..64", *pngScale)
	}
	if ext := strings.ToLower(filepath.Ext(*out)); !slices.Contains(export.Formats, ext) {
		log.Fatalf("-out: unsupported format %q", ext)
	}

	cfg := tui.Config{
		Mode:        m,
		MaxSegments: *maxSegs,
		Out:         *out,
		PNGScale:    *pngScale,
	}
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "kochview")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		level := slog.LevelInfo
		if *debug {
			level = slog.LevelDebug
		}
		cfg.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var model tea.Model
	if flag.NArg() > 0 {
		model = tui.NewWithPath(cfg, flag.Arg(0))
	} else {
		model = tui.New(cfg)
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
