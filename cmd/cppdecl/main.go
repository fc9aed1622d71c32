// Command cppdecl is a thin CLI wrapper around the parser: parse a header
// and print its AST, print its raw token stream, or index a directory of
// headers into the declaration database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "cppdecl",
		Short: "Parse C++ header declarations",
		Long:  "cppdecl lexes and parses C++ header declarations into a typed AST, without macro expansion or semantic analysis.",
	}

	root.AddCommand(newParseCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newIndexCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cppdecl: %v\n", err)
		os.Exit(1)
	}
}
