package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the ranking and execution modifiers shared by the
// three find-duplicates-* subcommands.
type globalFlags struct {
	preferRemovalSubstr string
	removalFilter       string
	remove              bool
	cachePath           string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "photodedup",
		Short: "Photo-library deduplication and JPEG/Exif inspection tool",
	}
	root.PersistentFlags().StringVar(&flags.preferRemovalSubstr, "prefer-removal-substr", "",
		"rank paths containing this substring lower during survivor selection")
	root.PersistentFlags().StringVar(&flags.removalFilter, "removal-filter", "",
		"restrict deletions to paths starting with this prefix")
	root.PersistentFlags().BoolVar(&flags.remove, "remove", false,
		"execute the deletion plan; absence means dry run")
	root.PersistentFlags().StringVar(&flags.cachePath, "cache", "",
		"fingerprint cache path (defaults to .photodedup-cache beside the first root)")

	root.AddCommand(newJPEGStructureCmd())
	root.AddCommand(newExifCmd())
	root.AddCommand(newImageInfoCmd())
	root.AddCommand(newFindDuplicatesFileNameCmd(flags))
	root.AddCommand(newFindDuplicatesFileCmd(flags))
	root.AddCommand(newFindDuplicatesImageCmd(flags))
	return root
}
