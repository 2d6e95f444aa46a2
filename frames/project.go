package frames

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// ScanReport is the result of scanning a whole template root: every
// document's frame regions plus the full diagnostic stream. Parse
// irregularities (unclosed tags, missing ids) are recovered silently and do
// not appear here; only authoring diagnostics are reported.
type ScanReport struct {
	// Documents holds one entry per scanned template file, sorted by
	// logical template path so downstream aggregation is deterministic.
	Documents []DocumentFrameSet `json:"documents"`

	// Diagnostics holds all authoring issues, sorted by template then line.
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// IsTemplateFile reports whether a path has a recognized template extension.
func IsTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".tmpl", ".tpl", ".gohtml":
		return true
	}
	return false
}

// ScanDir scans every template file under root concurrently and returns the
// combined report.
//
// Concurrency: one worker per CPU core reading from a shared file channel.
// Each file scan is a pure function of its own content, so workers share no
// mutable state beyond the collected result slice (mutex-guarded). Results
// are sorted after collection, so repeated scans of unchanged input yield
// structurally identical reports.
func ScanDir(root string, cfg ScanConfig, logger *slog.Logger) (*ScanReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Phase 1: collect template file paths.
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if IsTemplateFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: scan files concurrently. Slices start non-nil so an empty
	// report serializes as [] rather than null.
	report := &ScanReport{
		Documents:   make([]DocumentFrameSet, 0, len(files)),
		Diagnostics: []Diagnostic{},
	}
	var mu sync.Mutex

	numWorkers := max(runtime.NumCPU(), 1)
	fileChan := make(chan string, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for path := range fileChan {
				doc, ok := scanFile(path, root, cfg, logger)
				if !ok {
					continue
				}
				mu.Lock()
				report.Documents = append(report.Documents, doc)
				mu.Unlock()
			}
		})
	}
	for _, path := range files {
		fileChan <- path
	}
	close(fileChan)
	wg.Wait()

	// Phase 3: deterministic ordering, then classify.
	sort.Slice(report.Documents, func(i, j int) bool {
		return report.Documents[i].Template < report.Documents[j].Template
	})
	for _, doc := range report.Documents {
		for _, region := range doc.Regions {
			if d := Classify(region); d != nil {
				d.Template = doc.Template
				report.Diagnostics = append(report.Diagnostics, *d)
			}
		}
	}
	sort.SliceStable(report.Diagnostics, func(i, j int) bool {
		if report.Diagnostics[i].Template != report.Diagnostics[j].Template {
			return report.Diagnostics[i].Template < report.Diagnostics[j].Template
		}
		return report.Diagnostics[i].Line < report.Diagnostics[j].Line
	})

	logger.Debug("frames: scan complete",
		"root", root, "documents", len(report.Documents), "diagnostics", len(report.Diagnostics))
	return report, nil
}

// scanFile reads and scans one template file. Unreadable files are skipped.
func scanFile(path, root string, cfg ScanConfig, logger *slog.Logger) (DocumentFrameSet, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("frames: skipping unreadable template", "path", path, "error", err)
		return DocumentFrameSet{}, false
	}

	return DocumentFrameSet{
		Path:     path,
		Template: rel,
		Regions:  cfg.Scan(string(content)),
	}, true
}
