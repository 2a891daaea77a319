package main

import (
	"fmt"
	"log"
	"os"

	"aldoc/internal/buffer"
	"aldoc/internal/xmldoc"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	tagName   string
	attrName  string
	attrValue string
	lineNo    int
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a documentation block and print it as YAML",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readInput(args)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		tree := xmldoc.Parse(text)
		if tree == nil {
			fmt.Fprintln(os.Stderr, red("✗ not well-formed documentation"))
			os.Exit(1)
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			log.Fatalf("Failed to encode tree: %v", err)
		}
		fmt.Print(string(out))
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Print the first documentation tag matching --tag (and --attr/--value)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, err := readInput(args)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		node := xmldoc.ExtractTag(text, tagName, attrName, attrValue)
		if node == "" {
			os.Exit(1)
		}
		fmt.Println(node)
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate <file>",
	Short: "Print the line just below the documentation block above --line, or -1",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc := openDocument(args[0])
		end := buffer.FindDocBlockEnd(doc, lineNo-1)
		if end < 0 {
			fmt.Println(-1)
			return
		}
		fmt.Println(end + 1)
	},
}

var indentCmd = &cobra.Command{
	Use:   "indent <file>",
	Short: "Print the indentation column of --line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc := openDocument(args[0])
		fmt.Println(buffer.LineIndentColumn(doc.Text(), lineNo-1))
	},
}

func init() {
	extractCmd.Flags().StringVarP(&tagName, "tag", "t", "summary", "Tag name")
	extractCmd.Flags().StringVar(&attrName, "attr", "", "Attribute the opening tag must carry")
	extractCmd.Flags().StringVar(&attrValue, "value", "", "Value of --attr")

	for _, cmd := range []*cobra.Command{locateCmd, indentCmd} {
		cmd.Flags().IntVarP(&lineNo, "line", "l", 1, "1-based line number")
	}
}

func openDocument(path string) *buffer.Document {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	return buffer.NewDocument(string(data))
}
