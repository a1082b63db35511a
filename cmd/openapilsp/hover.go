package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/openapi-lsp/nominal"
	"github.com/speakeasy-api/openapi-lsp/yamldoc"
)

var hoverCmd = &cobra.Command{
	Use:   "hover <file> <line> <column>",
	Short: "Show what the language server would answer for a hover request",
	Long: `Hover resolves the node under the given zero-based line and column the
same way a textDocument/hover request does, and prints the rendered
markdown.`,
	Args: cobra.ExactArgs(3),
	RunE: runHover,
}

func runHover(cmd *cobra.Command, args []string) error {
	file := args[0]
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid line %q: %w", args[1], err)
	}
	col, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid column %q: %w", args[2], err)
	}

	ws := newWorkspace(nil, "")
	defer ws.Close()

	res, err := ws.Hover(cmd.Context(), file, yamldoc.Position{Line: line, Character: col})
	if err != nil {
		return fmt.Errorf("hover failed: %w", err)
	}

	fmt.Fprint(os.Stdout, renderHover(res.Nominal, res.Value, res.DerivedName))
	return nil
}

// renderHover is the CLI's stand-in for the server's markdown serializer.
func renderHover(nom nominal.ID, value any, derivedName string) string {
	var sb strings.Builder

	switch {
	case derivedName != "" && nom != "":
		fmt.Fprintf(&sb, "## %s (%s)\n\n", derivedName, nom)
	case derivedName != "":
		fmt.Fprintf(&sb, "## %s\n\n", derivedName)
	case nom != "":
		fmt.Fprintf(&sb, "## %s\n\n", nom)
	}

	if value != nil {
		rendered, err := yaml.Marshal(value)
		if err == nil {
			fmt.Fprintf(&sb, "```yaml\n%s```\n", rendered)
		}
	}

	return sb.String()
}
