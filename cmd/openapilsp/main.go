// openapilsp drives the workspace analysis core from the command line: it
// discovers and analyzes an OpenAPI workspace the same way the language
// server does, without any editor attached. Useful for debugging what the
// server would compute for a given workspace.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "openapilsp",
	Short: "Workspace analysis for OpenAPI documents",
	Long: `openapilsp runs the OpenAPI language-server analysis core against a
workspace of YAML/JSON documents linked by $ref: document discovery,
reference-graph connectivity, structural type solving, and the hover
query, all from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(hoverCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
