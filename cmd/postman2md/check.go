package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/postman2md/pkg/collection"
	"github.com/blackcoderx/postman2md/pkg/render"
	"github.com/blackcoderx/postman2md/pkg/storage"
)

// errDrift is returned by check when the pages on disk are out of date.
var errDrift = errors.New("generated pages are out of date")

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <collection>",
	Short: "Report pages that differ from what the collection would generate",
	Long: `check renders the collection in memory and compares the result with the
pages already in the output directory. Nothing is written. The command fails
when a page differs or when a page on disk is no longer generated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		coll, err := collection.FileLoader{}.Load(args[0])
		if err != nil {
			return err
		}

		mem := storage.NewMemoryWriter()
		if _, err := newConverter(mem, cfg, log).Run(coll); err != nil {
			return err
		}

		outDir := outputDir(args[0], cfg)
		drifts, err := storage.Diff(outDir, mem.Pages(), cfg.Extension, cfg.CombinedName)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), render.DriftReport(drifts, outDir))
		if len(drifts) > 0 {
			return errDrift
		}
		return nil
	},
}
