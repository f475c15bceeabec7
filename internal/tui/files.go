package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"kochview/internal/export"
	"kochview/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// seedExts lists the file types loadPath understands.
var seedExts = map[string]bool{".wkt": true, ".geojson": true, ".json": true, ".csv": true, ".kml": true}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if seedExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no seed files in current directory"
	}
}

// readSeed loads the segments of a seed file, picking the parser by
// extension.
func readSeed(p string) ([]geom.Segment, error) {
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".geojson", ".json":
		return geom.LoadGeo(p)
	case ".csv":
		return geom.LoadCSV(p)
	case ".kml":
		return geom.LoadKML(p)
	case ".wkt":
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		return geom.ParseWKT(string(data))
	default:
		return nil, fmt.Errorf("unsupported file: %s", ext)
	}
}

// loadPath loads a seed file into the session.
func (m *Model) loadPath(p string) {
	m.selPath = p
	segs, err := readSeed(p)
	if err != nil {
		m.log.Warn("seed load failed", "path", p, "err", err)
		m.status = "load error: " + err.Error()
		return
	}
	m.applySeed(segs, "loaded "+filepath.Base(p))
}

type exportedMsg struct {
	path string
	err  error
}

// exportCmd writes the current curve in the background. The snapshot is
// taken now, so later generations do not leak into the file.
func (m *Model) exportCmd() tea.Cmd {
	snap := m.session.Snapshot()
	path := m.cfg.Out
	opts := export.Options{PNGScale: m.cfg.PNGScale}
	m.status = "saving " + path + " ..."
	return func() tea.Msg {
		return exportedMsg{path: path, err: export.Write(path, snap, opts)}
	}
}
