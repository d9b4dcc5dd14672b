package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"swipetree/pkg/lineage"
)

var (
	relativesFormat    string
	relativesOverrides string
	relativesFanOut    int
)

var relativesCmd = &cobra.Command{
	Use:   "relatives <id>",
	Short: "Show the parents, spouse, children and siblings of an identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelatives,
}

func init() {
	relativesCmd.Flags().StringVar(&relativesFormat, "format", "human", "Output format (json, human)")
	relativesCmd.Flags().StringVar(&relativesOverrides, "overrides", "", "YAML file of explicit spouse pairs")
	relativesCmd.Flags().IntVar(&relativesFanOut, "fan-out", lineage.DefaultMaxFanOut, "Children per parent (1-9)")
	rootCmd.AddCommand(relativesCmd)
}

func runRelatives(cmd *cobra.Command, args []string) error {
	opts := []lineage.Option{lineage.WithMaxFanOut(relativesFanOut)}
	if relativesOverrides != "" {
		f, err := os.Open(relativesOverrides)
		if err != nil {
			return fmt.Errorf("open overrides: %w", err)
		}
		defer f.Close()
		overrides, err := lineage.LoadOverrides(f)
		if err != nil {
			return err
		}
		opts = append(opts, lineage.WithOverrides(overrides))
	}

	id := lineage.ID(args[0])
	if !lineage.Valid(id) {
		return fmt.Errorf("invalid identifier %q", args[0])
	}
	rel := lineage.NewResolver(opts...).Relatives(id)

	out := cmd.OutOrStdout()
	switch relativesFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rel)
	case "human":
		printRelatives(out, rel)
		return nil
	default:
		return fmt.Errorf("unknown format %q", relativesFormat)
	}
}

func printRelatives(w io.Writer, rel lineage.Relatives) {
	fmt.Fprintf(w, "%s (depth %d)\n", rel.ID, rel.Depth)
	fmt.Fprintf(w, "  parents:  %s\n", joinIDs(rel.Parents))
	fmt.Fprintf(w, "  spouse:   %s\n", orNone(string(rel.Spouse)))
	fmt.Fprintf(w, "  children: %s\n", joinIDs(rel.Children))
	fmt.Fprintf(w, "  siblings: %s\n", joinIDs(rel.Siblings))
}

func joinIDs(ids []lineage.ID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " ")
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
