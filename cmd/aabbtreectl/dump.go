package main

import (
	"fmt"
	"os"

	"github.com/packedrtree/aabbtree"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <index-file>",
		Short: "Print a per-level summary of a saved index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
	return cmd
}

func runDump(indexPath string) error {
	idx, err := aabbtree.LoadFloat64Index(indexPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", indexPath, err)
	}
	idx.Dump(os.Stdout)
	return nil
}
