package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/llmsplit/internal/segment"
)

// Store persists pipeline artifacts under a data directory:
//
//	raw/<source>/llms.txt
//	raw/<source>/llms-full.txt
//	pages/<source>/0000_<title>.json ... one file per page
//	pages/<source>/manifest.json
//	pages/manifest.json              pipeline-level summary
type Store struct {
	dataDir string
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// DataDir returns the root directory the store writes under.
func (s *Store) DataDir() string {
	return s.dataDir
}

// WriteRaw stores a downloaded blob under raw/<source>/<filename>.
func (s *Store) WriteRaw(sourceName, filename, text string) error {
	dir := filepath.Join(s.dataDir, "raw", sourceName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadRaw loads a previously downloaded blob.
func (s *Store) ReadRaw(sourceName, filename string) (string, error) {
	path := filepath.Join(s.dataDir, "raw", sourceName, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WritePages stores each page as an individual JSON file plus the source
// manifest. The filename embeds the sequence index so downstream stages can
// rely on lexical order matching page order.
func (s *Store) WritePages(sourceName string, pages []segment.Page, manifest *segment.SourceManifest) error {
	dir := filepath.Join(s.dataDir, "pages", sourceName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create pages dir: %w", err)
	}

	for _, p := range pages {
		name := fmt.Sprintf("%04d_%s.json", p.Index, SafeTitle(p.Title))
		if err := writeJSON(filepath.Join(dir, name), p); err != nil {
			return err
		}
	}
	return writeJSON(filepath.Join(dir, "manifest.json"), manifest)
}

// ReadPages loads every page of a source, ordered by sequence index.
func (s *Store) ReadPages(sourceName string) ([]segment.Page, error) {
	dir := filepath.Join(s.dataDir, "pages", sourceName)
	names, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}

	var pages []segment.Page
	for _, name := range names {
		if filepath.Base(name) == "manifest.json" {
			continue
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var p segment.Page
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })
	return pages, nil
}

// ReadSourceManifest loads one source's segmentation manifest.
func (s *Store) ReadSourceManifest(sourceName string) (*segment.SourceManifest, error) {
	path := filepath.Join(s.dataDir, "pages", sourceName, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var m segment.SourceManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &m, nil
}

// WritePipelineManifest stores the run-level summary next to the per-source
// page directories.
func (s *Store) WritePipelineManifest(v any) error {
	dir := filepath.Join(s.dataDir, "pages")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create pages dir: %w", err)
	}
	return writeJSON(filepath.Join(dir, "manifest.json"), v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var (
	// Word characters in the Unicode sense, so non-ASCII titles keep
	// their letters instead of collapsing to "untitled".
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// SafeTitle derives a filesystem-safe fragment from a page title: strip
// everything but letters, digits, underscores, spaces and dashes, cap at
// 50 runes, and collapse whitespace runs to underscores.
func SafeTitle(title string) string {
	t := unsafeChars.ReplaceAllString(title, "")
	if r := []rune(t); len(r) > 50 {
		t = string(r[:50])
	}
	t = strings.TrimSpace(t)
	t = whitespace.ReplaceAllString(t, "_")
	if t == "" {
		t = "untitled"
	}
	return t
}
