package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/packedrtree/aabbtree"
	"github.com/spf13/cobra"
)

var buildOut string

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <csv> <index-file>",
		Short: "Build a packed Hilbert R-tree index from a CSV of boxes",
		Long: `build reads rows of "min_x,min_y,max_x,max_y" from a CSV file
(no header row), builds a float64-coordinate index, and saves it.

Example:
  aabbtreectl build boxes.csv boxes.idx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], args[1])
		},
	}
	return cmd
}

func runBuild(csvPath, outPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", csvPath, err)
	}
	defer f.Close()

	idx := aabbtree.NewFloat64Index()
	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", csvPath, err)
		}
		coords := make([]float64, 4)
		for i, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("parse %q: %w", field, err)
			}
			coords[i] = v
		}
		idx.Add(coords[0], coords[1], coords[2], coords[3])
	}
	idx.Build()

	if err := idx.Save(outPath); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	fmt.Printf("built index with %d items -> %s\n", idx.Len(), outPath)
	return nil
}
