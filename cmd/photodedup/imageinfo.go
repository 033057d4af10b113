package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/photodedup/photodedup/internal/inspect"
)

func newImageInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "image-info <file>",
		Short: "Print the four fingerprints and a hex preview of a JPEG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := inspect.Info(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printImageInfoJSON(info)
			}
			fmt.Printf("full-file hash:      %016x\n", info.FullFileHash)
			fmt.Printf("partial-file hash:   %016x\n", info.PartialFileHash)
			fmt.Printf("image-data hash:     %016x\n", info.ImageDataHash)
			fmt.Printf("image-data partial:  %016x\n", info.ImageDataPartial)
			fmt.Printf("hex preview:         %s\n", info.HexPreview)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the fingerprints as pretty-printed JSON")
	return cmd
}

func printImageInfoJSON(info *inspect.ImageInfo) error {
	view := struct {
		FullFileHash     string `json:"full_file_hash"`
		PartialFileHash  string `json:"partial_file_hash"`
		ImageDataHash    string `json:"image_data_hash"`
		ImageDataPartial string `json:"image_data_partial"`
		HexPreview       string `json:"hex_preview"`
	}{
		FullFileHash:     fmt.Sprintf("%016x", info.FullFileHash),
		PartialFileHash:  fmt.Sprintf("%016x", info.PartialFileHash),
		ImageDataHash:    fmt.Sprintf("%016x", info.ImageDataHash),
		ImageDataPartial: fmt.Sprintf("%016x", info.ImageDataPartial),
		HexPreview:       info.HexPreview,
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	os.Stdout.Write(pretty.Pretty(raw))
	return nil
}
