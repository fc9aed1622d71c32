package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/cppdecl/internal/lexer"
	"github.com/oxhq/cppdecl/internal/source"
	"github.com/oxhq/cppdecl/internal/token"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the raw token stream for a header (lexer debugging)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(args[0])
		},
	}
}

func runTokens(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	r := source.New(string(src), path)
	lx := lexer.New(r, lexer.DefaultOptions())
	for {
		tok, err := lx.Next()
		if err != nil {
			return fmt.Errorf("lexing %s: %w", path, err)
		}
		fmt.Printf("%-6s %-12s %q\n", tok.Location.String(), tok.Kind, tok.Spelling)
		if tok.Kind == token.Eof {
			return nil
		}
	}
}
