package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/photodedup/photodedup/internal/dedupe"
)

func runDedup(flags *globalFlags, paths []string, run func([]*dedupe.FileHeader, dedupe.Options, *dedupe.Cache) *dedupe.Plan) error {
	opts := dedupe.Options{
		PreferRemovalSubstr: flags.preferRemovalSubstr,
		RemovalFilter:       flags.removalFilter,
		Remove:              flags.remove,
		PartialHashBytes:    dedupe.DefaultPartialHashBytes,
		CachePath:           flags.cachePath,
	}
	if opts.CachePath == "" && len(paths) > 0 {
		opts.CachePath = filepath.Join(filepath.Dir(paths[0]), ".photodedup-cache")
	}

	cache, err := dedupe.LoadCache(opts.CachePath)
	if err != nil {
		return err
	}

	headers := dedupe.Collect(paths, func(msg string) {
		fmt.Println("warning:", msg)
	})

	plan := run(headers, opts, cache)
	fmt.Print(plan.Format())

	if err := cache.Save(); err != nil {
		fmt.Println("warning: failed to save fingerprint cache:", err)
	}

	return dedupe.Execute(plan, opts, os.Stdout)
}

func newFindDuplicatesFileNameCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find-duplicates-file-name <paths...>",
		Short: "Find duplicates by identical file name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(flags, args, func(h []*dedupe.FileHeader, o dedupe.Options, c *dedupe.Cache) *dedupe.Plan {
				return dedupe.RunFileName(h, o)
			})
		},
	}
}

func newFindDuplicatesFileCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find-duplicates-file <paths...>",
		Short: "Find duplicates by identical file bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(flags, args, dedupe.RunFileContent)
		},
	}
}

func newFindDuplicatesImageCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find-duplicates-image <paths...>",
		Short: "Find duplicates by identical decoded image payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(flags, args, dedupe.RunImageContent)
		},
	}
}
