package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"aldoc/internal/buffer"
	"aldoc/internal/extractor"
	"aldoc/internal/git"
	"aldoc/internal/updater"

	"github.com/spf13/cobra"
)

var (
	writeFiles bool
	snippet    bool
	baseRef    string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "List AL objects and procedures without documentation",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := cfg.Project.Root
		if len(args) > 0 {
			root = args[0]
		}

		fmt.Printf("📂 Scanning directory: %s\n", root)
		u := newUpdater(cfg, false)
		files, missing := 0, 0
		err := newCrawler(cfg).ScanProject(root, func(file *extractor.File) {
			files++
			doc := openDocument(file.Path)
			for _, t := range u.Missing(doc, file) {
				missing++
				fmt.Printf("  %s %s:%d %s\n", red("✗"), file.Path, t.Line()+1, t)
			}
		})
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		if missing == 0 {
			fmt.Printf("%s %d files, everything documented.\n", green("✅"), files)
			return
		}
		fmt.Printf("📝 %d files, %s undocumented.\n", files, yellow(missing))
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert <file>",
	Short: "Document the object or procedure declared at --line",
	Long: "Document the object or procedure declared at --line. With --snippet the\n" +
		"block is printed with ${N:...} placeholders for an editor to expand;\n" +
		"otherwise the change is shown as a diff, or applied with --write.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		path := args[0]

		file, err := newExtractor(cfg).ExtractFromFile(path)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
		u := newUpdater(cfg, snippet)
		target, ok := u.TargetAt(file, lineNo-1)
		if !ok {
			log.Fatalf("No object or procedure is declared at %s:%d", path, lineNo)
		}

		before := readFile(path)
		edit, ok := u.Plan(buffer.NewDocument(before), target)
		if !ok {
			fmt.Printf("%s %s is already documented.\n", green("✅"), target)
			return
		}

		if snippet {
			for _, l := range edit.Lines {
				fmt.Println(l)
			}
			return
		}
		edits := []updater.Edit{edit}
		emit(&updater.Result{Path: path, Before: before, After: updater.Apply(before, edits), Edits: edits}, cfg.Docs.DiffContext)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Document the constructs touched by uncommitted git changes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := cfg.Project.Root
		if len(args) > 0 {
			root = args[0]
		}

		// 1. Get Local Git Changes
		changes, err := git.GetChangedFiles(root, baseRef)
		if err != nil {
			log.Fatalf("Failed to get git changes: %v", err)
		}
		if len(changes) == 0 {
			fmt.Println("✅ No changes detected.")
			return
		}

		// 2. Document what the changes touch
		cr := newCrawler(cfg)
		ext := newExtractor(cfg)
		u := newUpdater(cfg, false)
		updated := 0
		for _, change := range changes {
			if !cr.Matches(change.Path) {
				continue
			}
			file, err := ext.ExtractFromFile(change.Path)
			if err != nil {
				log.Printf("⚠️ Failed to parse file %s: %v", change.Path, err)
				continue
			}
			res, err := u.UpdateFile(file, func(t updater.Target) bool {
				return change.Touches(t.Anchor(), t.End())
			})
			if err != nil {
				log.Printf("⚠️ %v", err)
				continue
			}
			if len(res.Edits) > 0 {
				updated++
				emit(res, cfg.Docs.DiffContext)
			}
		}
		fmt.Printf("📊 %d of %d changed files needed documentation.\n", updated, len(changes))
	},
}

func init() {
	insertCmd.Flags().IntVarP(&lineNo, "line", "l", 1, "1-based line of the declaration")
	insertCmd.Flags().BoolVar(&snippet, "snippet", false, "Print the block as an editor snippet")
	for _, cmd := range []*cobra.Command{insertCmd, updateCmd} {
		cmd.Flags().BoolVarP(&writeFiles, "write", "w", false, "Write changes instead of printing a diff")
	}
	updateCmd.Flags().StringVar(&baseRef, "base", "HEAD", "Git ref to diff against")
}

// emit writes res to disk with --write, otherwise prints its diff.
func emit(res *updater.Result, context int) {
	if !writeFiles {
		fmt.Print(updater.Diff(filepath.ToSlash(res.Path), res.Before, res.After, context))
		return
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		log.Fatalf("Failed to stat %s: %v", res.Path, err)
	}
	if err := os.WriteFile(res.Path, []byte(res.After), info.Mode().Perm()); err != nil {
		log.Fatalf("Failed to write %s: %v", res.Path, err)
	}
	for _, e := range res.Edits {
		fmt.Printf("  %s %s:%d %s\n", green("✓"), res.Path, e.Start+1, e.Target)
	}
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
