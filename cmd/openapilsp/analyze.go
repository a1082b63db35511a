package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/speakeasy-api/openapi-lsp/lspcore"
	"github.com/speakeasy-api/openapi-lsp/solver"
	"github.com/speakeasy-api/openapi-lsp/system"
)

var analyzePattern string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [workspace]",
	Short: "Analyze every document group in a workspace",
	Long: `Analyze discovers the documents under the workspace folder, builds the
$ref connectivity graph, and runs the structural type solver over every
analysis group, reporting any nominal or structural conflicts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePattern, "pattern", "", "override the root discovery glob")
}

func newWorkspace(args []string, pattern string) *lspcore.Workspace {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg := lspcore.DefaultConfig()
	if pattern != "" {
		cfg.DiscoverRootsPattern = pattern
	}

	return lspcore.NewWorkspace(root, &system.FileSystem{}, lspcore.WithConfig(cfg))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ws := newWorkspace(args, analyzePattern)
	defer ws.Close()

	results, err := ws.AnalyzeAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	groupIDs := make([]string, 0, len(results))
	for id := range results {
		groupIDs = append(groupIDs, id)
	}
	sort.Strings(groupIDs)

	failed := 0
	for _, id := range groupIDs {
		res := results[id]
		if res.Solve.OK {
			fmt.Fprintf(os.Stdout, "✅ %s\n", id)
			continue
		}
		failed++
		fmt.Fprintf(os.Stdout, "❌ %s - %d conflicts:\n", id, len(res.Solve.Diagnostics))
		for _, diag := range res.Solve.Diagnostics {
			fmt.Fprintf(os.Stdout, "   %s\n", formatDiagnostic(diag))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d groups have conflicts", failed, len(results))
	}
	fmt.Fprintf(os.Stderr, "%d groups analyzed, no conflicts\n", len(results))
	return nil
}

func formatDiagnostic(diag solver.Diagnostic) string {
	switch diag.Kind {
	case solver.DiagNominalConflict:
		return fmt.Sprintf("nominal conflict: %s (%s) vs %s (%s)", diag.A, diag.ProofA, diag.B, diag.ProofB)
	case solver.DiagStructConflict:
		return fmt.Sprintf("structural conflict at %s", diag.Node)
	case solver.DiagMissingTarget:
		return fmt.Sprintf("missing target: %s -> %s", diag.From, diag.To)
	default:
		return "unknown diagnostic"
	}
}
