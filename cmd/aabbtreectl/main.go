// Command aabbtreectl is a thin, non-algorithmic CLI over the aabbtree
// package: it builds an index from a CSV of boxes, persists it, queries a
// saved index, and dumps its per-level structure. It is an external
// collaborator, not part of the core packed-tree algorithm.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "aabbtreectl",
	Short:   "Build, query, and inspect packed Hilbert R-tree indexes",
	Version: "0.1.0",
}

func init() {
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newDumpCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
