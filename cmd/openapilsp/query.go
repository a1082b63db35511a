package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <jsonpath>",
	Short: "Run a JSONPath expression against a workspace document",
	Long: `Query loads a document the way the analysis core does (through the
document manager, so tombs and parse recovery behave identically) and
evaluates a JSONPath expression against its YAML AST.

Example:
  openapilsp query openapi.yaml '$.components.schemas.*'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	file, expr := args[0], args[1]

	ws := newWorkspace(nil, "")
	defer ws.Close()

	doc, err := ws.Documents().Get(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if doc.Kind == docmanager.KindTomb || doc.YAML == nil || doc.YAML.Root() == nil {
		return fmt.Errorf("%s is not readable", file)
	}

	path, err := yamlpath.NewPath(expr)
	if err != nil {
		return fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	matches, err := path.Find(doc.YAML.Root())
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	for _, match := range matches {
		out, err := yaml.Marshal(match)
		if err != nil {
			return fmt.Errorf("failed to render match: %w", err)
		}
		fmt.Fprintf(os.Stdout, "---\n%s", out)
	}
	fmt.Fprintf(os.Stderr, "%d matches\n", len(matches))
	return nil
}
