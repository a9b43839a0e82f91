package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/postman2md/pkg/render"
)

var (
	previewHTML  bool
	previewWidth int
)

func init() {
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "print the page as HTML instead of styled terminal output")
	previewCmd.Flags().IntVar(&previewWidth, "width", render.DefaultWidth, "word-wrap width for terminal output")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <page>",
	Short: "Show a generated page in the terminal or as HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read page: %w", err)
		}

		if previewHTML {
			fmt.Fprint(cmd.OutOrStdout(), render.HTML(string(data)))
			return nil
		}

		out, err := render.Terminal(string(data), previewWidth)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
