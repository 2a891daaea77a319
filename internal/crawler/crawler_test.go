package crawler

import (
	"path/filepath"
	"sort"
	"testing"

	"aldoc/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_ScanProject(t *testing.T) {
	root := filepath.Join("testdata", "app")
	c := NewCrawler(extractor.NewExtractor())

	var files []*extractor.File
	err := c.ScanProject(root, func(f *extractor.File) {
		files = append(files, f)
	})
	require.NoError(t, err)

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	t.Run("Only AL files outside ignored directories", func(t *testing.T) {
		require.Len(t, files, 2)
		assert.Equal(t, filepath.Join(root, "src", "Customer.TableExt.al"), files[0].Path)
		assert.Equal(t, filepath.Join(root, "src", "SalesMgt.Codeunit.AL"), files[1].Path, "Extensions match case-insensitively")
	})

	t.Run("Units are extracted", func(t *testing.T) {
		var names []string
		for _, f := range files {
			for _, p := range f.Procedures() {
				names = append(names, p.Name)
			}
		}
		assert.Equal(t, []string{"IsVip", "Release", "Check"}, names)
	})
}

func TestCrawler_Options(t *testing.T) {
	root := filepath.Join("testdata", "app")
	c := NewCrawler(extractor.NewExtractor()).WithIgnored(nil).WithExtensions([]string{".al"})

	count := 0
	require.NoError(t, c.ScanProject(root, func(*extractor.File) { count++ }))
	assert.Equal(t, 3, count, "The package cache is scanned once it is no longer ignored")

	assert.True(t, c.Matches("x/y.AL"))
	assert.False(t, c.Matches("x/y.txt"))
}

func TestCrawler_MissingRoot(t *testing.T) {
	c := NewCrawler(extractor.NewExtractor())
	err := c.ScanProject(filepath.Join("testdata", "nope"), func(*extractor.File) {})
	assert.Error(t, err)
}
