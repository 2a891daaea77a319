package crawler

import (
	"io/fs"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"aldoc/internal/extractor"
)

// Crawler scans a directory for AL source files.
type Crawler struct {
	extractor  *extractor.Extractor
	ignored    []string
	extensions []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor) *Crawler {
	return &Crawler{
		extractor:  ext,
		ignored:    []string{".git", ".alpackages", ".snapshots", "node_modules"},
		extensions: []string{".al"},
	}
}

// WithIgnored replaces the directory names skipped during a scan.
func (c *Crawler) WithIgnored(dirs []string) *Crawler {
	c.ignored = dirs
	return c
}

// WithExtensions replaces the file extensions that are scanned.
func (c *Crawler) WithExtensions(exts []string) *Crawler {
	c.extensions = exts
	return c
}

// Matches reports whether path has one of the scanned extensions.
func (c *Crawler) Matches(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(c.extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// ScanProject walks the root directory and processes all relevant files.
// It uses a callback to stream files, preventing large memory buildup.
func (c *Crawler) ScanProject(root string, onFile func(*extractor.File)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && slices.Contains(c.ignored, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.Matches(path) {
			return nil
		}

		file, err := c.extractor.ExtractFromFile(path)
		if err != nil {
			// Log and continue instead of failing the whole scan
			log.Printf("⚠️ Skipping %s: %v", path, err)
			return nil
		}

		onFile(file)
		return nil
	})
}
