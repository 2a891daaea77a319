package main

import (
	"fmt"
	"log"
	"os"

	"aldoc/internal/extractor"
	"aldoc/internal/generator"

	"github.com/spf13/cobra"
)

var (
	descriptorPath string
	placeholderIdx int
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Print the summary snippet of every object in a descriptor file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		df := loadDescriptors()
		for _, obj := range df.Objects {
			fmt.Println(generator.ObjectDoc(obj, placeholderIdx))
		}
	},
}

var procedureCmd = &cobra.Command{
	Use:   "procedure",
	Short: "Print the documentation snippet of every procedure in a descriptor file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		df := loadDescriptors()
		procs := df.Procedures
		for _, obj := range df.Objects {
			procs = append(procs, obj.Procedures...)
		}
		for i, proc := range procs {
			block := generator.ProcedureBlock(proc)
			if block == "" {
				fmt.Fprintf(os.Stderr, "%s procedure #%d has no name, skipped\n", yellow("⚠️"), i+1)
				continue
			}
			fmt.Println(block)
		}
	},
}

func init() {
	for _, cmd := range []*cobra.Command{objectCmd, procedureCmd} {
		cmd.Flags().StringVarP(&descriptorPath, "file", "f", "", "YAML descriptor file")
		_ = cmd.MarkFlagRequired("file")
	}
	objectCmd.Flags().IntVarP(&placeholderIdx, "index", "i", 1, "Placeholder index (0 leaves the __idx__ marker)")
}

func loadDescriptors() *extractor.DescriptorFile {
	df, err := extractor.LoadDescriptorFile(descriptorPath)
	if err != nil {
		log.Fatalf("Failed to load descriptors: %v", err)
	}
	return df
}
