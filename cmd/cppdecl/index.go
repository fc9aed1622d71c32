package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxhq/cppdecl/db"
	"github.com/oxhq/cppdecl/internal/config"
	"github.com/oxhq/cppdecl/internal/dbmodel"
	"github.com/oxhq/cppdecl/internal/walker"
)

func newIndexCmd() *cobra.Command {
	var include, exclude []string
	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Walk a directory of headers and persist one row per declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(args[0], include, exclude)
		},
	}
	cmd.Flags().StringArrayVar(&include, "include", nil, "doublestar glob a path must match (repeatable)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "doublestar glob that excludes a path (repeatable)")
	return cmd
}

func runIndex(root string, include, exclude []string) error {
	cfg := config.Load()
	gdb, err := db.Connect(cfg.CacheDSN)
	if err != nil {
		return fmt.Errorf("connecting to index database: %w", err)
	}

	files, err := walker.Walk(root, walker.Config{IncludeGlobs: include, ExcludeGlobs: exclude})
	if err != nil {
		return err
	}

	run := dbmodel.IndexRun{RootDir: root, StartedAt: time.Now()}
	if err := gdb.Create(&run).Error; err != nil {
		return fmt.Errorf("recording index run: %w", err)
	}

	declCount := 0
	for _, file := range files {
		text, err := walker.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cppdecl: %v\n", err)
			continue
		}
		unit, diags, err := parseCached(text, file)
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", d.Location, d.Code, d.Message)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "cppdecl: %s: %v\n", file, err)
			continue
		}
		records := dbmodel.FlattenDeclarations(unit)
		if err := dbmodel.Persist(gdb, file, records); err != nil {
			fmt.Fprintf(os.Stderr, "cppdecl: persisting %s: %v\n", file, err)
			continue
		}
		declCount += len(records)
	}

	run.FileCount = len(files)
	run.DeclCount = declCount
	run.FinishedAt = time.Now()
	if err := gdb.Save(&run).Error; err != nil {
		return fmt.Errorf("finalizing index run: %w", err)
	}

	fmt.Printf("indexed %d declarations across %d files\n", declCount, len(files))
	return nil
}
