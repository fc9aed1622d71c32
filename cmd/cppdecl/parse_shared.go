package main

import (
	"github.com/oxhq/cppdecl/internal/ast"
	"github.com/oxhq/cppdecl/internal/cache"
	"github.com/oxhq/cppdecl/internal/config"
	"github.com/oxhq/cppdecl/internal/declparse"
	"github.com/oxhq/cppdecl/internal/perrors"
)

// cliCache is the AST cache the CLI subcommands share; its entries expire
// after Config.CacheTTL (CPPDECL_CACHE_TTL, five minutes when unset).
var cliCache = cache.New(config.Load().CacheTTL)

// parseCached parses text (named path for diagnostics), consulting and
// populating cliCache. Entries are keyed by the whole text, so only a
// repeat parse of byte-identical input within the TTL is skipped.
func parseCached(text, path string) (*ast.TranslationUnit, []perrors.Diagnostic, error) {
	if unit, ok := cliCache.Get(text); ok {
		return unit, nil, nil
	}
	unit, diags, err := declparse.Parse(text, path, config.ParseOptions())
	if err != nil {
		return nil, diags, err
	}
	cliCache.Store(text, unit)
	return unit, diags, nil
}
