package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var graphPattern string

var graphCmd = &cobra.Command{
	Use:   "graph [workspace]",
	Short: "Print the workspace $ref graph and its analysis groups",
	Long: `Graph discovers the workspace's documents, follows every resolvable
$ref, and prints the resulting document graph together with its
strongly-connected analysis groups and inter-group edges.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphPattern, "pattern", "", "override the root discovery glob")
}

func runGraph(cmd *cobra.Command, args []string) error {
	ws := newWorkspace(args, graphPattern)
	defer ws.Close()

	conn, err := ws.Connectivity(cmd.Context())
	if err != nil {
		return fmt.Errorf("connectivity failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "documents (%d):\n", len(conn.Nodes))
	for _, uri := range conn.Nodes {
		targets := append([]string(nil), conn.Edges[uri]...)
		sort.Strings(targets)
		if len(targets) == 0 {
			fmt.Fprintf(os.Stdout, "  %s\n", uri)
			continue
		}
		fmt.Fprintf(os.Stdout, "  %s\n", uri)
		for _, target := range targets {
			fmt.Fprintf(os.Stdout, "    -> %s\n", target)
		}
	}

	if len(conn.Groups) > 0 {
		fmt.Fprintf(os.Stdout, "\ncyclic groups (%d):\n", len(conn.Groups))
		groupIDs := make([]string, 0, len(conn.Groups))
		for id := range conn.Groups {
			groupIDs = append(groupIDs, id)
		}
		sort.Strings(groupIDs)
		for _, id := range groupIDs {
			fmt.Fprintf(os.Stdout, "  %s: %v\n", id, conn.Groups[id])
		}
	}

	if len(conn.IncomingEdges) > 0 {
		fmt.Fprintf(os.Stdout, "\ngroup dependencies:\n")
		groupIDs := make([]string, 0, len(conn.IncomingEdges))
		for id := range conn.IncomingEdges {
			groupIDs = append(groupIDs, id)
		}
		sort.Strings(groupIDs)
		for _, id := range groupIDs {
			for _, upstream := range conn.IncomingEdges[id] {
				fmt.Fprintf(os.Stdout, "  %s <- %s\n", id, upstream)
			}
		}
	}

	return nil
}
