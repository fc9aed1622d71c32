package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a header and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or text")
	return cmd
}

func runParse(path, format string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	unit, diags, err := parseCached(string(src), path)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", d.Location, d.Code, d.Message)
	}
	if err != nil {
		return err
	}

	switch format {
	case "text":
		return unit.Dump(os.Stdout)
	default:
		b, err := json.MarshalIndent(unit, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding AST: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}
}
