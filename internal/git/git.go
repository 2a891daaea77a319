package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Hunk is a range of new-file lines touched by a change. Lines are 1-based as
// git reports them; Count is 0 for a pure deletion.
type Hunk struct {
	Start int
	Count int
}

type ChangedFile struct {
	Path  string
	Hunks []Hunk
}

// Touches reports whether any hunk overlaps the 0-based line range [from, to].
// A deletion counts as touching the line it happened in front of.
func (f ChangedFile) Touches(from, to int) bool {
	for _, h := range f.Hunks {
		start := h.Start - 1
		end := start + h.Count - 1
		if h.Count == 0 {
			start, end = h.Start, h.Start
		}
		if start <= to && end >= from {
			return true
		}
	}
	return false
}

// GetChangedFiles runs git diff in dir and returns the changed files under
// dir with their hunks. Paths are joined to dir.
func GetChangedFiles(dir, baseRef string) ([]ChangedFile, error) {
	cmd := exec.Command("git", "diff", "-U0", "--relative", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	changes, err := parseDiff(output)
	if err != nil {
		return nil, err
	}
	for i := range changes {
		changes[i].Path = filepath.Join(dir, changes[i].Path)
	}
	return changes, nil
}

// Regex for chunk header: @@ -oldStart,oldLen +newStart,newLen @@
var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []ChangedFile
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			if currentFile != nil {
				changes = append(changes, *currentFile)
				currentFile = nil
			}
			// a/path/to/file b/path/to/file: keep the new path
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				currentFile = &ChangedFile{Path: strings.TrimPrefix(parts[3], "b/")}
			}
			continue
		}

		if currentFile == nil {
			continue
		}

		// Deleted files have nothing left to document.
		if line == "+++ /dev/null" {
			currentFile = nil
			continue
		}

		if m := chunkHeader.FindStringSubmatch(line); m != nil {
			start, _ := strconv.Atoi(m[1])
			count := 1 // Default length is 1 if omitted
			if m[2] != "" {
				count, _ = strconv.Atoi(m[2])
			}
			currentFile.Hunks = append(currentFile.Hunks, Hunk{Start: start, Count: count})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read git diff: %w", err)
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	return changes, nil
}
