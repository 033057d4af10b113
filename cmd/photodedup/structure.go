package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photodedup/photodedup/internal/inspect"
	"github.com/photodedup/photodedup/internal/jpegstructure"
)

func newJPEGStructureCmd() *cobra.Command {
	var tables, mcu, warn bool
	cmd := &cobra.Command{
		Use:   "jpeg-structure <file>",
		Short: "Print the structural decomposition of a JPEG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := inspect.JPEGStructure(args[0], jpegstructure.Control{
				Warn:    warn,
				Markers: true,
				Tables:  tables,
				Mcu:     mcu,
			})
			if err != nil {
				return err
			}
			fmt.Print(desc.Format(jpegstructure.Control{Warn: warn, Tables: tables, Mcu: mcu}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&tables, "tables", false, "dump DQT/DHT contents")
	cmd.Flags().BoolVar(&mcu, "mcu", false, "dump per-MCU DC-diff and coefficient grids")
	cmd.Flags().BoolVar(&warn, "warn", true, "include accumulated warnings in the output")
	return cmd
}
